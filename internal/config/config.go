package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type BackendConfig struct {
	URL       string        `yaml:"url"`     // base API URL, e.g. http://localhost:3000/api
	Timeout   time.Duration `yaml:"timeout"` // request timeout
	UserAgent string        `yaml:"user_agent"`
}

type DashboardConfig struct {
	URL string `yaml:"url"` // web dashboard opened from the tray / deep links
}

type AppConfig struct {
	Name       string `yaml:"name"`
	IconSizePx int    `yaml:"icon_size_px"`
}

type NotifyConfig struct {
	DisplayDuration time.Duration `yaml:"display_duration"` // auto-dismiss after this
}

type SeenConfig struct {
	MaxKeys int           `yaml:"max_keys"` // cap to bound memory
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen_address"`
}

type Config struct {
	Backend       BackendConfig   `yaml:"backend"`
	Dashboard     DashboardConfig `yaml:"dashboard"`
	CheckInterval time.Duration   `yaml:"check_interval"`
	App           AppConfig       `yaml:"app"`
	Notify        NotifyConfig    `yaml:"notify"`
	Seen          SeenConfig      `yaml:"seen"`
	Metrics       MetricsConfig   `yaml:"metrics"`
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults below are enough to run against a local backend.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Defaults
	if c.Backend.URL == "" {
		c.Backend.URL = "http://localhost:3000/api"
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 5 * time.Second
	}
	if c.Dashboard.URL == "" {
		c.Dashboard.URL = "http://localhost:8080"
	}
	if c.CheckInterval == 0 {
		c.CheckInterval = 10 * time.Second
	}
	if c.App.Name == "" {
		c.App.Name = "LOLBin Monitor"
	}
	if c.App.IconSizePx == 0 {
		c.App.IconSizePx = 64
	}
	if c.Notify.DisplayDuration == 0 {
		c.Notify.DisplayDuration = 15 * time.Second
	}
	if c.Seen.MaxKeys == 0 {
		c.Seen.MaxKeys = 4096
	}
	if c.Seen.TTL == 0 {
		c.Seen.TTL = 24 * time.Hour
	}
	if c.Metrics.ListenAddress == "" {
		c.Metrics.ListenAddress = ":9309"
	}
	return &c, nil
}
