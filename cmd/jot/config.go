package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional CLI configuration, read from
// {dataDir}/config.yaml when present.
type Config struct {
	// Dir overrides the data directory (rarely useful inside the data
	// dir itself, but honored for symmetry with JOT_DIR).
	Dir string `yaml:"dir"`
	// DefaultColor is the background applied to new notes when --color
	// is not given. Empty means the theme-adaptive default.
	DefaultColor string `yaml:"default_color"`
}

// loadConfig reads config.yaml from dir. A missing or unreadable file
// yields the zero config; the CLI works without one.
func loadConfig(dir string) Config {
	var cfg Config
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// resolveDataDir determines the data directory: --dir flag, then
// JOT_DIR, then ~/.jot.
func resolveDataDir() string {
	if dataDir != "" {
		return dataDir
	}
	if env := os.Getenv("JOT_DIR"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jot"
	}
	return filepath.Join(home, ".jot")
}
