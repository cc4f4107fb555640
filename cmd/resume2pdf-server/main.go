package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

// shutdownGrace bounds how long in-flight renders may finish on shutdown.
const shutdownGrace = 15 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}
	if flags.version {
		fmt.Println("resume2pdf-server", Version)
		return nil
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		log.Debug(fmt.Sprintf(format, a...))
	}))

	warnUnknownEnvVars(os.Stderr)
	env := loadEnvConfig()

	cfg := DefaultConfig()
	configPath := flags.configPath
	if configPath == "" {
		configPath = env.ConfigPath
	}
	if configPath != "" {
		cfg, err = LoadConfig(configPath)
		if err != nil {
			return err
		}
	}
	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	browser := resume2pdf.DetectBrowserConfig()
	if cfg.Browser.Bin != "" {
		browser.ExecPath = cfg.Browser.Bin
	}
	if cfg.Browser.CacheDir != "" {
		browser.CacheDir = cfg.Browser.CacheDir
	}
	if cfg.Browser.Constrained {
		browser.Constrained = true
	}

	poolSize := resume2pdf.ResolvePoolSize(cfg.Workers)
	pool := resume2pdf.NewServicePool(poolSize,
		resume2pdf.WithTimeout(cfg.Timeout),
		resume2pdf.WithSettleDelay(cfg.Settle),
		resume2pdf.WithBrowserConfig(browser),
	)
	defer pool.Close()

	app := newApp(&poolRenderer{pool: pool}, cfg.Timeout, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	log.Info("listening",
		slog.String("addr", cfg.Addr),
		slog.Int("workers", poolSize),
		slog.String("version", Version),
		slog.Bool("constrained", browser.Constrained),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownGrace); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
