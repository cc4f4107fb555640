package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring a YAML file.
type envConfig struct {
	ConfigPath string        // RESUME2PDF_CONFIG: config file path
	Addr       string        // RESUME2PDF_ADDR: listen address
	Workers    int           // RESUME2PDF_WORKERS: render pool size
	Timeout    time.Duration // RESUME2PDF_TIMEOUT: per-render timeout
	Settle     time.Duration // RESUME2PDF_SETTLE: raster settling delay
}

// knownEnvVars lists valid RESUME2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RESUME2PDF_CONFIG":  true,
	"RESUME2PDF_ADDR":    true,
	"RESUME2PDF_WORKERS": true,
	"RESUME2PDF_TIMEOUT": true,
	"RESUME2PDF_SETTLE":  true,
	// Browser resolution vars read by the library itself.
	resume2pdf.EnvBrowserBin:   true,
	resume2pdf.EnvBrowserCache: true,
	resume2pdf.EnvConstrained:  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RESUME2PDF_CONFIG"),
		Addr:       os.Getenv("RESUME2PDF_ADDR"),
	}

	if workers := os.Getenv("RESUME2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if timeout := os.Getenv("RESUME2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if settle := os.Getenv("RESUME2PDF_SETTLE"); settle != "" {
		if d, err := time.ParseDuration(settle); err == nil && d >= 0 {
			cfg.Settle = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized RESUME2PDF_* variables.
// Helps catch typos like RESUME2PDF_WORKER instead of RESUME2PDF_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "RESUME2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values to config.
// Only sets values the config file left at defaults, so precedence is:
// CLI flags > env vars > config file > defaults (flags merge later).
func applyEnvConfig(env *envConfig, cfg *Config) {
	if env.Addr != "" && cfg.Addr == defaultAddr {
		cfg.Addr = env.Addr
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.Timeout > 0 && cfg.Timeout == defaultTimeout {
		cfg.Timeout = env.Timeout
	}
	if env.Settle > 0 && cfg.Settle == defaultSettle {
		cfg.Settle = env.Settle
	}
}
