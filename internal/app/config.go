package app

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk configuration for the patchwork binary, loaded from
// the TOML file named by --config. Without --config no file is read and
// DefaultConfig applies.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ServerConfig struct {
	Address string `toml:"address"`
}

// DefaultConfig is what a freshly installed binary runs with if no config
// file is found.
func DefaultConfig() Config {
	return Config{
		Database: DatabaseConfig{Path: "patchwork.db"},
		Server:   ServerConfig{Address: ":8080"},
	}
}

// LoadConfig reads and decodes a TOML config file. A missing file is not an
// error — callers get DefaultConfig back.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("app: load config %s: %w", path, err)
	}
	return cfg, nil
}
