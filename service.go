package resume2pdf

import (
	"context"
	"errors"
	"fmt"
)

// Service orchestrates the resume-to-PDF pipeline: synthesize (or wrap) the
// HTML document, print it through the headless browser, and fall back to the
// raster path when printing fails.
type Service struct {
	cfg         serviceConfig
	synthesizer htmlSynthesizer
	renderer    pdfRenderer
	rasterizer  pdfRasterizer
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout: defaultTimeout,
			settle:  defaultSettleDelay,
			browser: DetectBrowserConfig(),
		},
		synthesizer: &resumeSynthesizer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create render engines if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.browser, s.cfg.timeout)
	}
	if s.rasterizer == nil {
		s.rasterizer = newRodRasterizer(s.cfg.browser, s.cfg.timeout, s.cfg.settle)
	}

	return s
}

// Render runs the full pipeline and returns the PDF with its suggested
// filename. The context is used for cancellation and timeout.
//
// A structured document takes the synthesis path; otherwise the provided
// HTML snapshot is wrapped as-is. When the print pipeline fails for any
// reason the raster fallback runs before the render is declared failed.
func (s *Service) Render(ctx context.Context, input Input) (*Artifact, error) {
	if !input.hasContent() {
		return nil, ErrMissingContent
	}

	var html string
	if input.Document != nil {
		if err := input.Document.Validate(); err != nil {
			return nil, err
		}
		html = s.synthesizer.SynthesizeDocument(ctx, *input.Document, input.Theme, input.Language)
	} else {
		html = s.synthesizer.WrapSnapshot(ctx, input.HTML, input.CSS)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	pdf, renderErr := s.renderer.Render(ctx, html)
	if renderErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var rasterErr error
		pdf, rasterErr = s.rasterizer.Rasterize(ctx, html)
		if rasterErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, errors.Join(renderErr, rasterErr))
		}
	}

	return &Artifact{
		PDF:      pdf,
		Filename: deriveFilename(input.Document, input.Filename),
	}, nil
}

// Close releases resources. Render engines launch a browser per call and
// hold nothing between calls, so this is currently a no-op kept for
// interface stability with pooled usage.
func (s *Service) Close() error {
	return nil
}
