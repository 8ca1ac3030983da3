package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultFetchTimeoutInSeconds    = 30
	defaultRefreshIntervalInSeconds = 300 // 5 minutes
)

// Config maps to the config.toml file for the dashboard service
type Config struct {
	MetricsURL               string `toml:"MetricsURL"`
	FetchTimeoutInSeconds    uint32 `toml:"FetchTimeoutInSeconds"`
	RefreshIntervalInSeconds uint32 `toml:"RefreshIntervalInSeconds"`
	ListenAddress            string `toml:"ListenAddress"`
	StaticDir                string `toml:"StaticDir"`
}

// LoadConfig parses a TOML file into the Config struct, applying defaults for the optional timing values
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if len(cfg.MetricsURL) == 0 {
		return nil, fmt.Errorf("MetricsURL is not set in config file '%s'", filepath)
	}
	if cfg.FetchTimeoutInSeconds == 0 {
		cfg.FetchTimeoutInSeconds = defaultFetchTimeoutInSeconds
	}
	if cfg.RefreshIntervalInSeconds == 0 {
		cfg.RefreshIntervalInSeconds = defaultRefreshIntervalInSeconds
	}

	return &cfg, nil
}
