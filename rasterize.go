package resume2pdf

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-rod/rod/lib/proto"
)

// Raster fallback capture parameters. The page is staged at print width and
// captured at triple scale so the embedded image stays sharp after it is
// scaled down onto the PDF page.
const (
	rasterDeviceScale = 3.0
	rasterJPEGQuality = 98
)

// A4 page size in millimeters for the image-embed path.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// pxToMM converts CSS pixels (96 dpi) to millimeters.
const pxToMM = 0.264583

// pdfRasterizer converts a complete HTML document to a PDF by screenshotting
// the rendered page and embedding the image. Lossy but far more tolerant of
// exotic CSS than the print pipeline.
type pdfRasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

// rodRasterizer captures an oversampled screenshot with a headless browser
// and composes a single-page PDF around it. Always launches with the reduced
// argument set: this path only runs after the print pipeline failed, so it
// takes the most permissive launch profile available.
type rodRasterizer struct {
	cfg     BrowserConfig
	timeout time.Duration
	settle  time.Duration
}

var _ pdfRasterizer = (*rodRasterizer)(nil)

func newRodRasterizer(cfg BrowserConfig, timeout, settle time.Duration) *rodRasterizer {
	return &rodRasterizer{cfg: cfg, timeout: timeout, settle: settle}
}

func (r *rodRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	img, width, height, err := r.capture(ctx, html)
	if err != nil {
		return nil, err
	}
	pdf, err := buildImagePDF(img, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return pdf, nil
}

// capture stages the document at print width and returns a JPEG of the full
// page plus its CSS-pixel dimensions.
func (r *rodRasterizer) capture(ctx context.Context, html string) ([]byte, float64, float64, error) {
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	browser, cleanup, err := launchBrowser(ctx, r.cfg, true, timeout)
	if err != nil {
		return nil, 0, 0, err
	}
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             printViewportWidth,
		Height:            printViewportHeight,
		DeviceScaleFactor: rasterDeviceScale,
	}); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page = page.Timeout(timeout)
	if err := page.SetDocumentContent(html); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Re-assert the print-critical rules after load so the capture matches
	// the print pipeline even when the snapshot stylesheet overrode them.
	if err := page.AddStyleTag("", printResetCSS); err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if r.settle > 0 {
		select {
		case <-ctx.Done():
			return nil, 0, 0, fmt.Errorf("%w: %v", ErrPageLoad, ctx.Err())
		case <-time.After(r.settle):
		}
	}

	// Measure the laid-out content; the capture and the fit math both work
	// from these CSS-pixel dimensions.
	metrics, err := proto.PageGetLayoutMetrics{}.Call(page)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	width := float64(printViewportWidth)
	height := float64(printViewportHeight)
	if metrics.CSSContentSize != nil {
		width = metrics.CSSContentSize.Width
		height = metrics.CSSContentSize.Height
	}

	quality := rasterJPEGQuality
	img, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:                proto.PageCaptureScreenshotFormatJpeg,
		Quality:               &quality,
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return img, width, height, nil
}

// buildImagePDF embeds a JPEG capture of widthPx x heightPx CSS pixels into
// a single A4 page, scaled to fit and horizontally centered at the top.
func buildImagePDF(img []byte, widthPx, heightPx float64) ([]byte, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("invalid capture dimensions %.0fx%.0f", widthPx, heightPx)
	}
	if _, err := jpeg.DecodeConfig(bytes.NewReader(img)); err != nil {
		return nil, fmt.Errorf("decode capture: %v", err)
	}

	widthMM := widthPx * pxToMM
	heightMM := heightPx * pxToMM

	ratio := pageWidthMM / widthMM
	if hr := pageHeightMM / heightMM; hr < ratio {
		ratio = hr
	}
	scaledW := widthMM * ratio
	scaledH := heightMM * ratio
	x := (pageWidthMM - scaledW) / 2

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.RegisterImageOptionsReader("resume", fpdf.ImageOptions{ImageType: "JPEG"}, bytes.NewReader(img))
	doc.ImageOptions("resume", x, 0, scaledW, scaledH, false, fpdf.ImageOptions{ImageType: "JPEG"}, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
