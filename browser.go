package resume2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Environment variables recognized by DetectBrowserConfig.
const (
	// EnvBrowserBin overrides the browser executable path.
	EnvBrowserBin = "RESUME2PDF_BROWSER_BIN"
	// EnvBrowserCache overrides the browser cache directory scanned for
	// versioned installs.
	EnvBrowserCache = "RESUME2PDF_BROWSER_CACHE"
	// EnvConstrained forces the constrained (reduced process-isolation)
	// launch profile regardless of auto-detection.
	EnvConstrained = "RESUME2PDF_CONSTRAINED"
)

// BrowserConfig selects how the headless browser binary is located and
// launched. Built once per process (or injected for tests) and passed down;
// the renderers never inspect the environment themselves.
type BrowserConfig struct {
	// ExecPath is an explicit browser executable path. Highest priority.
	ExecPath string
	// CacheDir is a directory holding versioned browser installs, scanned
	// when ExecPath is unset.
	CacheDir string
	// Constrained marks a container/serverless context where sandboxing
	// primitives are unavailable; selects the reduced argument set.
	Constrained bool
}

// DetectBrowserConfig builds a BrowserConfig from the process environment.
// Constrained mode is taken from EnvConstrained or inferred from common
// container and serverless signals.
func DetectBrowserConfig() BrowserConfig {
	bin := os.Getenv(EnvBrowserBin)
	if bin == "" {
		// Honor rod's own override so existing deployments keep working.
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	return BrowserConfig{
		ExecPath:    bin,
		CacheDir:    os.Getenv(EnvBrowserCache),
		Constrained: os.Getenv(EnvConstrained) == "1" || inConstrainedEnvironment(),
	}
}

// inConstrainedEnvironment detects container and serverless contexts through
// their conventional signals.
func inConstrainedEnvironment() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	if os.Getenv("container") != "" {
		return true
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}
	// Serverless function hosts.
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" || os.Getenv("VERCEL") == "1" {
		return true
	}
	return false
}

// systemBrowserPaths are well-known install locations tried after the
// managed browser. Order matters.
var systemBrowserPaths = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chrome",
	"/opt/google/chrome/chrome",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
}

// browserBinNames are executable names looked for inside versioned cache
// directories.
var browserBinNames = []string{"chrome", "chromium", "chrome-linux/chrome", "chrome-linux64/chrome"}

// ResolveBrowserPath locates a usable browser executable, trying candidates
// in priority order: the explicit override, a cache directory scan
// (preferring the lexicographically latest version directory), rod's
// managed browser, then well-known system locations. When nothing verifies
// it falls through to the managed default path unverified so the downstream
// launch fails with a diagnosable error instead of resolution failing
// silently.
func ResolveBrowserPath(cfg BrowserConfig) string {
	if cfg.ExecPath != "" && isExecutable(cfg.ExecPath) {
		return cfg.ExecPath
	}

	if cfg.CacheDir != "" {
		if p := scanBrowserCache(cfg.CacheDir); p != "" {
			return p
		}
	}

	managed := launcher.NewBrowser().BinPath()
	if isExecutable(managed) {
		return managed
	}

	for _, p := range systemBrowserPaths {
		if isExecutable(p) {
			return p
		}
	}

	// Last resort: let the launch attempt surface the real error.
	return managed
}

// scanBrowserCache looks for an installed browser binary under versioned
// subdirectories of dir, preferring the lexicographically latest version.
func scanBrowserCache(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() {
			versions = append(versions, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))

	for _, v := range versions {
		for _, name := range browserBinNames {
			p := filepath.Join(dir, v, filepath.FromSlash(name))
			if isExecutable(p) {
				return p
			}
		}
	}
	return ""
}

// isExecutable reports whether path exists as a regular file with an execute
// bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}

// newLauncher builds a rod launcher for the resolved binary. The reduced
// argument set disables the sandboxing primitives that containerized and
// serverless hosts do not provide.
func newLauncher(cfg BrowserConfig, reduced bool) *launcher.Launcher {
	l := launcher.New().
		Bin(ResolveBrowserPath(cfg)).
		Headless(true)

	if reduced {
		l = l.NoSandbox(true).
			Set("disable-setuid-sandbox").
			Set("disable-dev-shm-usage").
			Set("disable-accelerated-2d-canvas").
			Set("disable-gpu").
			Set("no-zygote").
			Set("single-process")
	}
	return l
}

// launchBrowser starts a browser process and connects to it. The returned
// cleanup tears down the process and its temporary profile; callers must run
// it on every exit path.
func launchBrowser(ctx context.Context, cfg BrowserConfig, reduced bool, timeout time.Duration) (*rod.Browser, func(), error) {
	l := newLauncher(cfg, reduced)

	u, err := l.Context(ctx).Launch()
	if err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("%w: %v", ErrBrowserLaunch, err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if timeout > 0 {
		browser = browser.Timeout(timeout)
	}
	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	cleanup := func() {
		_ = browser.Close()
		l.Cleanup()
	}
	return browser, cleanup, nil
}
