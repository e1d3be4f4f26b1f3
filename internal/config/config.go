// Package config loads the service configuration.
// Order: defaults -> config.yml -> config.local.yml -> env overrides -> validate.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"recipedex/internal/logging"
	"recipedex/internal/server"
)

// Config holds the application configuration.
type Config struct {
	Server  server.Config  `yaml:"server"`
	Storage StorageConfig  `yaml:"storage"`
	Logging logging.Config `yaml:"logging"`
}

// StorageConfig holds the document store settings. The connection string is
// only ever taken from the environment; the YAML files carry the database
// and collection names.
type StorageConfig struct {
	MongoURI   string `yaml:"-"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// DefaultStorageConfig returns the default storage configuration.
func DefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Database:   "recipedb",
		Collection: "recipes",
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *StorageConfig) ApplyDefaults() {
	defaults := DefaultStorageConfig()
	if c.Database == "" {
		c.Database = defaults.Database
	}
	if c.Collection == "" {
		c.Collection = defaults.Collection
	}
}

// ApplyEnvOverrides reads the connection string from MONGODB_URI.
func (c *StorageConfig) ApplyEnvOverrides() {
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		c.MongoURI = uri
	}
}

// Validate returns an error if the configuration is invalid. A missing
// connection string is a fatal startup condition, not a runtime error.
func (c *StorageConfig) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("storage.mongo_uri is required: set the MONGODB_URI environment variable")
	}
	return nil
}

// Load reads the configuration from the given directory.
func Load(configDir string) (*Config, error) {
	cfg := &Config{
		Server:  server.DefaultConfig(),
		Storage: DefaultStorageConfig(),
		Logging: logging.DefaultConfig(),
	}

	loadFile(filepath.Join(configDir, "config.yml"), cfg)
	loadFile(filepath.Join(configDir, "config.local.yml"), cfg)

	cfg.Server.ApplyDefaults()
	cfg.Storage.ApplyDefaults()
	cfg.Logging.ApplyDefaults()

	cfg.Storage.ApplyEnvOverrides()

	if err := cfg.Server.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(filename string, cfg *Config) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return // File doesn't exist, skip
		}
		slog.Warn("Error reading config file", "file", filename, "error", err)
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("Error parsing config file", "file", filename, "error", err)
	}
}
