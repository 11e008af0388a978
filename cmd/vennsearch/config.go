package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vennsearch/vennsearch/pkg/venn"
)

// config carries the settings shared by the subcommands. Flags override
// file values; the file is optional.
type config struct {
	Curves     int  `yaml:"curves"`
	Workers    int  `yaml:"workers"`
	TrailLimit int  `yaml:"trail_limit"`
	Verbose    bool `yaml:"verbose"`
}

func defaultConfig() config {
	return config{
		Curves: 5,
	}
}

// loadConfig reads a YAML config file into the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.Curves < venn.MinColors || c.Curves > venn.MaxColors {
		return fmt.Errorf("curves must be %d..%d, got %d", venn.MinColors, venn.MaxColors, c.Curves)
	}
	if c.TrailLimit < 0 {
		return fmt.Errorf("trail_limit must be non-negative, got %d", c.TrailLimit)
	}
	return nil
}
