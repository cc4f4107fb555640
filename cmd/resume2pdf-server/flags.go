package main

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	configPath string
	addr       string
	workers    int
	timeout    time.Duration
	verbose    bool
	version    bool
}

// parseFlags parses args (excluding the program name) into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := pflag.NewFlagSet("resume2pdf-server", pflag.ContinueOnError)
	fs.StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default \":8080\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "render pool size (default: auto)")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "per-render timeout (default 30s)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	return f, nil
}

// mergeFlags applies explicit flag values onto config. Flags always win.
func mergeFlags(f *cliFlags, cfg *Config) {
	if f.addr != "" {
		cfg.Addr = f.addr
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.timeout > 0 {
		cfg.Timeout = f.timeout
	}
}
