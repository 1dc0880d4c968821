package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user-tunable viewer defaults. It only seeds the initial
// viewport; nothing about the running session is written back.
type Config struct {
	WindowSizeSec float64 `yaml:"window_size_sec"`
	PlaybackSpeed float64 `yaml:"playback_speed"`
	TrackHeight   float32 `yaml:"track_height"`
	ShowRX        bool    `yaml:"show_rx"`
	ShowTX        bool    `yaml:"show_tx"`
}

// Default returns the defaults used when no config file exists.
func Default() Config {
	return Config{
		WindowSizeSec: 0.01,
		PlaybackSpeed: 1.0,
		TrackHeight:   16,
		ShowRX:        true,
		ShowTX:        true,
	}
}

// Path returns ~/.config/csvpshmem-viewer/config.yaml (or XDG_CONFIG_HOME).
// Returns empty string if the home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "csvpshmem-viewer", "config.yaml")
}

// Load reads the config file; missing or broken files fall back to defaults.
func Load() Config {
	cfg := Default()
	p := Path()
	if p == "" {
		return cfg
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("csvpshmem-viewer: warning: config parse error: %v", err)
		return Default()
	}
	if cfg.WindowSizeSec <= 0 {
		cfg.WindowSizeSec = Default().WindowSizeSec
	}
	if cfg.PlaybackSpeed <= 0 {
		cfg.PlaybackSpeed = Default().PlaybackSpeed
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
