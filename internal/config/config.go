// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath = "config.toml"
	DefaultHTTPAddr   = ":8189"
	DefaultDataDir    = "prompt_history"
)

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Storage  StorageConfig  `toml:"storage"`
	Pipeline PipelineConfig `toml:"pipeline"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServerConfig holds the HTTP server listen address.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// StorageConfig holds the root directory for history files.
// Thumbnails live in a "thumbnails" subdirectory of DataDir.
type StorageConfig struct {
	DataDir string `toml:"data_dir"`
}

// PipelineConfig holds the host pipeline's image directories.
// Images referenced by update requests are resolved against these.
type PipelineConfig struct {
	OutputDir string `toml:"output_dir"`
	InputDir  string `toml:"input_dir"`
	TempDir   string `toml:"temp_dir"`
}

// ThumbnailDir returns the directory thumbnail files are stored in.
func (c StorageConfig) ThumbnailDir() string {
	return filepath.Join(c.DataDir, "thumbnails")
}

// Load reads and parses the TOML config file at path and applies default values for missing fields.
// A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Storage: StorageConfig{
			DataDir: DefaultDataDir,
		},
		Pipeline: PipelineConfig{
			OutputDir: "output",
			InputDir:  "input",
			TempDir:   "temp",
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
