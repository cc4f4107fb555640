package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alnah/go-resume2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Defaults applied before config file, env, and flags.
const (
	defaultAddr    = ":8080"
	defaultTimeout = 30 * time.Second
	defaultSettle  = time.Second
)

// Config holds all server configuration.
type Config struct {
	Addr    string        `yaml:"addr"`    // Listen address (default ":8080")
	Workers int           `yaml:"workers"` // Render pool size (0 = auto)
	Timeout time.Duration `yaml:"timeout"` // Per-render timeout
	Settle  time.Duration `yaml:"settle"`  // Raster fallback settling delay
	Browser BrowserConfig `yaml:"browser"`
}

// BrowserConfig selects the headless browser binary and launch profile.
type BrowserConfig struct {
	Bin         string `yaml:"bin"`         // Explicit executable path (empty = auto-resolve)
	CacheDir    string `yaml:"cacheDir"`    // Versioned install cache to scan
	Constrained bool   `yaml:"constrained"` // Force the reduced launch argument set
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:    defaultAddr,
		Timeout: defaultTimeout,
		Settle:  defaultSettle,
	}
}

// LoadConfig reads a YAML config file over the defaults.
// Returns an error if the file is missing (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Settle < 0 {
		cfg.Settle = defaultSettle
	}
	return cfg, nil
}
