package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int  `yaml:"log_level"`
	Debug    bool `yaml:"debug"`

	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Library LibraryConfig `yaml:"library"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	// Delimiter between ids in list-style path segments, e.g. /item/1,2,3.
	IDDelimiter string `yaml:"id_delimiter"`
}

type CatalogConfig struct {
	// Type of catalog: "memory" or "mongo"
	Type string `yaml:"type"`

	// Mongo options
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type LibraryConfig struct {
	// Root directory scanned for audio files by the scan command.
	Root string `yaml:"root"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// An empty document leaves the target untouched, so start from a
	// zero config rather than a nil pointer.
	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	// Set defaults if not provided
	if config.Server.Host == "" {
		config.Server.Host = "127.0.0.1"
	}

	if config.Server.Port == "" {
		config.Server.Port = "8337"
	}

	if config.Server.IDDelimiter == "" {
		config.Server.IDDelimiter = ","
	}

	if config.Catalog.Type == "" {
		config.Catalog.Type = "memory"
	}

	if config.Catalog.URI == "" {
		config.Catalog.URI = "mongodb://localhost:27017"
	}

	if config.Catalog.Database == "" {
		config.Catalog.Database = "musicd"
	}

	return config, nil
}
