package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ojensen/musicd/config"
	"github.com/ojensen/musicd/internal/catalog"
	"github.com/ojensen/musicd/internal/scanner"
	"github.com/ojensen/musicd/internal/server"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to config file")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	// Positional arguments override the configured bind address: host, then port.
	args := flag.Args()
	if len(args) > 0 {
		cfg.Server.Host = args[0]
	}
	if len(args) > 1 {
		cfg.Server.Port = args[1]
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	cat, err := newCatalog(cfg)
	if err != nil {
		slog.Error("Failed to open catalog", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, cat)

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	slog.Info("Starting library API server", "addr", addr, "catalog", cfg.Catalog.Type)
	if err := srv.Start(addr); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// newCatalog builds the catalog named by the configuration. A memory catalog
// is rescanned from the library root on every start; a mongo catalog is
// filled out-of-band by the scan command.
func newCatalog(cfg *config.Config) (catalog.Catalog, error) {
	switch cfg.Catalog.Type {
	case "mongo":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Catalog.URI))
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		return catalog.NewMongo(client.Database(cfg.Catalog.Database)), nil

	case "memory":
		mem := catalog.NewMemory()
		if cfg.Library.Root == "" {
			slog.Warn("Memory catalog with no library root configured; serving an empty catalog")
			return mem, nil
		}
		stats, err := scanner.New(mem).Scan(context.Background(), cfg.Library.Root, nil)
		if err != nil {
			return nil, fmt.Errorf("scan library %s: %w", cfg.Library.Root, err)
		}
		slog.Info("Library scanned", "root", cfg.Library.Root, "tracks", stats.Tracks, "albums", stats.Albums)
		return mem, nil

	default:
		return nil, fmt.Errorf("unknown catalog type %q", cfg.Catalog.Type)
	}
}
