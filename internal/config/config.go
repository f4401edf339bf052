package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`
	Metrics struct {
		RiskFreeRate       float64 `yaml:"risk_free_rate"`
		TradingDaysPerYear int     `yaml:"trading_days_per_year"`
	} `yaml:"metrics"`
	Dashboard struct {
		DefaultSymbols []string `yaml:"default_symbols"`
		DefaultPeriod  string   `yaml:"default_period"`
	} `yaml:"dashboard"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 3009
	cfg.Cache.TTLSeconds = 3600
	cfg.Metrics.RiskFreeRate = 0.02
	cfg.Metrics.TradingDaysPerYear = 252
	cfg.Dashboard.DefaultSymbols = []string{"AAPL", "MSFT", "GOOGL"}
	cfg.Dashboard.DefaultPeriod = "1Y"
	return cfg
}

// Load reads config from a YAML file, then applies environment
// variable overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if port := os.Getenv("MARKETDASH_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("parse MARKETDASH_PORT: %w", err)
		}
		cfg.Server.Port = p
	}
	if ttl := os.Getenv("MARKETDASH_CACHE_TTL"); ttl != "" {
		t, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("parse MARKETDASH_CACHE_TTL: %w", err)
		}
		cfg.Cache.TTLSeconds = t
	}

	if cfg.Cache.TTLSeconds <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Metrics.TradingDaysPerYear <= 0 {
		return nil, fmt.Errorf("trading days per year must be positive, got %d", cfg.Metrics.TradingDaysPerYear)
	}

	return cfg, nil
}
