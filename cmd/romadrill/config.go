package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the drill configuration file, TOML formatted.
type Config struct {
	Drill      DrillConfig      `toml:"drill"`
	Dictionary DictionaryConfig `toml:"dictionary"`
	Logging    LoggingConfig    `toml:"logging"`
}

// DrillConfig selects what gets typed.
type DrillConfig struct {
	// Words is the vocabulary file, one entry per line.
	Words string `toml:"words"`
	// Count is the number of vocabularies per drill. Ignored when
	// Strokes is set.
	Count int `toml:"count"`
	// Strokes budgets the drill by ideal key strokes instead.
	Strokes int `toml:"strokes"`
	// Separator is "none" or "whitespace".
	Separator string `toml:"separator"`
	// Random shuffles the vocabulary order.
	Random bool `toml:"random"`
	// LapEvery inserts a lap mark every N key strokes. Zero disables
	// laps.
	LapEvery int `toml:"lap_every"`
}

// DictionaryConfig selects the key stroke dictionary.
type DictionaryConfig struct {
	// Path is an optional dictionary file (TOML, YAML, or JSON) merged
	// over the built-in romaji table.
	Path string `toml:"path"`
	// Watch reloads the dictionary file when it changes on disk.
	Watch bool `toml:"watch"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Drill: DrillConfig{
			Count:     10,
			Separator: "whitespace",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a TOML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
