package resume2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Print viewport matched to the preview surface: A4 at 96 CSS dpi, doubled
// device scale so text rasterizes crisply when the browser falls back to
// raster glyphs.
const (
	printViewportWidth  = 794
	printViewportHeight = 1123
	printDeviceScale    = 2.0
)

// A4 page size in inches for the print-to-PDF call.
const (
	pageWidthInches  = 8.27
	pageHeightInches = 11.69
)

// pdfRenderer turns a complete HTML document into PDF bytes.
type pdfRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// rodRenderer drives a headless browser through the DevTools protocol. Each
// call launches a fresh browser process and tears it down before returning,
// so one failed render can never poison the next.
type rodRenderer struct {
	cfg     BrowserConfig
	timeout time.Duration

	// attempt performs a single launch-render-teardown cycle. Defaults to
	// renderOnce; replaced by tests to exercise the retry decision.
	attempt func(ctx context.Context, html string, reduced bool) ([]byte, error)
}

var _ pdfRenderer = (*rodRenderer)(nil)

func newRodRenderer(cfg BrowserConfig, timeout time.Duration) *rodRenderer {
	r := &rodRenderer{cfg: cfg, timeout: timeout}
	r.attempt = r.renderOnce
	return r
}

// Render converts HTML to PDF. In a constrained environment the reduced
// argument set is used from the start; otherwise a standard launch is tried
// first and retried once with reduced arguments when the launch itself
// fails. Failures past the launch stage are not retried: the page already
// loaded once, so a second process would fail the same way.
func (r *rodRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	pdf, err := r.attempt(ctx, html, r.cfg.Constrained)
	if err == nil || r.cfg.Constrained {
		return pdf, err
	}
	if errors.Is(err, ErrBrowserLaunch) || errors.Is(err, ErrBrowserConnect) {
		return r.attempt(ctx, html, true)
	}
	return nil, err
}

func (r *rodRenderer) renderOnce(ctx context.Context, html string, reduced bool) ([]byte, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	browser, cleanup, err := launchBrowser(ctx, r.cfg, reduced, timeout)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             printViewportWidth,
		Height:            printViewportHeight,
		DeviceScaleFactor: printDeviceScale,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := loadAndSettle(page.Timeout(timeout), html); err != nil {
		return nil, err
	}

	margin := 0.0
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        ptrFloat(pageWidthInches),
		PaperHeight:       ptrFloat(pageHeightInches),
		MarginTop:         &margin,
		MarginBottom:      &margin,
		MarginLeft:        &margin,
		MarginRight:       &margin,
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// loadAndSettle injects the document and waits for it to be print-ready:
// load event, network idle, then web fonts. The request-idle watcher is armed
// before injection so requests started during parsing are counted.
func loadAndSettle(page *rod.Page, html string) error {
	waitIdle := page.WaitRequestIdle(300*time.Millisecond, nil, nil, nil)

	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()

	// Fonts load outside the network-idle window when served from cache.
	if _, err := page.Evaluate(rod.Eval("() => document.fonts.ready").ByPromise()); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return nil
}

func ptrFloat(f float64) *float64 { return &f }
