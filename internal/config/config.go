// Package config loads tool configuration by layering defaults, an
// optional YAML file, and MLBMETRICS_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// Season pins the season year; 0 means auto-detect.
	Season int `koanf:"season"`

	// Windows are the trailing-window sizes in plate appearances.
	Windows []int `koanf:"windows"`

	// MinPA is the minimum plate-appearance count for a batter to be
	// included anywhere in the output.
	MinPA int `koanf:"min_pa"`

	// TrendPoints bounds the length of each trend sequence.
	TrendPoints int `koanf:"trend_points"`

	// Workers sets the number of concurrent per-batter rolling workers.
	Workers int `koanf:"workers"`

	// CachePath is the SQLite cache of provider responses.
	CachePath string `koanf:"cache_path"`

	// OutputPath is where the analyze command writes the dataset.
	OutputPath string `koanf:"output_path"`

	// HTTPTimeoutSec bounds each provider request.
	HTTPTimeoutSec int `koanf:"http_timeout_sec"`
}

// Default returns the standard configuration.
func Default() *Config {
	return &Config{
		Season:         0,
		Windows:        []int{50, 100, 250},
		MinPA:          50,
		TrendPoints:    20,
		Workers:        8,
		CachePath:      filepath.Join(userHome(), ".mlbmetrics", "statcast.db"),
		OutputPath:     "player_data.json",
		HTTPTimeoutSec: 120,
	}
}

// Load builds a Config by layering (low → high): defaults, the YAML file at
// path (skipped when path is empty and MLBMETRICS_CONFIG is unset), and
// environment variables like MLBMETRICS_MIN_PA.
func Load(path string) (*Config, error) {
	cfg := *Default()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("MLBMETRICS_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("MLBMETRICS_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "mlbmetrics_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Windows) == 0 {
		return errors.New("windows must not be empty")
	}
	for _, w := range c.Windows {
		if w <= 0 {
			return errors.New("window sizes must be positive")
		}
	}
	if c.MinPA <= 0 {
		return errors.New("min_pa must be positive")
	}
	if c.TrendPoints <= 0 {
		return errors.New("trend_points must be positive")
	}
	return nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
