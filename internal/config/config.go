// Package config loads the kdx configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the host application's settings. The core index knows
// nothing about any of this; it only ever sees byte streams and point
// batches.
type Config struct {
	// DataDir is where kdx keeps its files. Default: ".kdx".
	DataDir string `yaml:"data_dir"`

	// IndexPath is the serialized tree. Default: <data_dir>/index.json.
	IndexPath string `yaml:"index_path"`

	// CatalogPath is the SQLite point catalog. Default: <data_dir>/catalog.db.
	CatalogPath string `yaml:"catalog_path"`

	// Dims fixes the expected point dimensionality. 0 means "whatever
	// the first batch or insertion has".
	Dims int `yaml:"dims"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds the HTTP host surface settings.
type ServerConfig struct {
	// Addr is the listen address. Default: ":7312".
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{}.withDefaults()
}

// Load reads a YAML configuration file and fills in defaults for
// anything left unset.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	out := c
	if out.DataDir == "" {
		out.DataDir = ".kdx"
	}
	if out.IndexPath == "" {
		out.IndexPath = filepath.Join(out.DataDir, "index.json")
	}
	if out.CatalogPath == "" {
		out.CatalogPath = filepath.Join(out.DataDir, "catalog.db")
	}
	if out.Server.Addr == "" {
		out.Server.Addr = ":7312"
	}
	return out
}

// EnsureDataDir creates the data directory if it does not exist.
func (c Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}
