package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ojensen/musicd/config"
	"github.com/ojensen/musicd/internal/catalog"
	"github.com/ojensen/musicd/internal/scanner"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to config file")
	dir := flag.String("dir", "", "Library directory to scan (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	root := cfg.Library.Root
	if *dir != "" {
		root = *dir
	}
	if root == "" {
		slog.Error("No library directory given; set library.root or pass -dir")
		os.Exit(1)
	}

	// The scan writes through the catalog's insert side, so it needs the
	// persistent backend; a memory catalog would vanish with this process.
	if cfg.Catalog.Type != "mongo" {
		slog.Error("Scanning requires a mongo catalog", "configured", cfg.Catalog.Type)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Catalog.URI))
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	cancel()
	if err != nil {
		slog.Error("Failed to connect to mongo", "uri", cfg.Catalog.URI, "error", err)
		os.Exit(1)
	}
	cat := catalog.NewMongo(client.Database(cfg.Catalog.Database))

	bar := progressbar.Default(-1, "scanning")
	stats, err := scanner.New(cat).Scan(context.Background(), root, func(string) {
		_ = bar.Add(1)
	})
	_ = bar.Finish()
	if err != nil {
		slog.Error("Scan failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Scan finished", "root", root, "tracks", stats.Tracks, "albums", stats.Albums, "skipped", stats.Skipped)
}
