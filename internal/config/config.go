// Package config loads shell configuration from an optional YAML dotfile
// overlaid with GOSHELL_*-prefixed environment variables, the same
// file-then-env layering used elsewhere in the corpus this shell is built
// alongside.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds every setting the shell binary needs beyond what's passed on
// the command line.
type Config struct {
	HistoryFile     string `yaml:"history_file" envconfig:"HISTORY_FILE"`
	HistorySize     int    `yaml:"history_size" envconfig:"HISTORY_SIZE"`
	Color           bool   `yaml:"color" envconfig:"COLOR"`
	FDCheckInterval int    `yaml:"fd_check_interval_ms" envconfig:"FD_CHECK_INTERVAL_MS"`
}

const envPrefix = "GOSHELL"

// Default returns the configuration used when no dotfile is present and no
// environment overrides apply.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		HistoryFile:     filepath.Join(home, ".goshell_history"),
		HistorySize:     1000,
		Color:           true,
		FDCheckInterval: 250,
	}
}

// Path returns the standard dotfile location, ~/.goshellrc.yaml.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".goshellrc.yaml")
}

// Load reads the dotfile at Path (falling back to Default when it does not
// exist) and then overlays GOSHELL_*-prefixed environment variables, which
// always take precedence over both the dotfile and the built-in default.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the dotfile at path, then applies environment overlays.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// No dotfile is the common case; defaults stand.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if cfg.HistoryFile != "" && cfg.HistoryFile[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.HistoryFile = filepath.Join(home, cfg.HistoryFile[1:])
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	return cfg, nil
}
