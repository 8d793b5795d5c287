// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	API   APIConfig   `toml:"api"`
	Theme ThemeConfig `toml:"theme"`
	Log   LogConfig   `toml:"log"`
}

// APIConfig maps data-source settings.
type APIConfig struct {
	BaseURL  *string `toml:"base-url"`
	Timeout  *string `toml:"timeout"`
	Fallback *string `toml:"fallback"`
}

// ThemeConfig maps theme settings.
type ThemeConfig struct {
	Default       *string `toml:"default"`
	WatchInterval *string `toml:"watch-interval"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
