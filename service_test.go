package resume2pdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// Mock implementations for testing.

type mockSynthesizer struct {
	documentCalled bool
	snapshotCalled bool
	inputTheme     string
	inputLanguage  string
	inputHTML      string
	inputCSS       string
	output         string
}

func (m *mockSynthesizer) SynthesizeDocument(ctx context.Context, doc ResumeDocument, theme, language string) string {
	m.documentCalled = true
	m.inputTheme = theme
	m.inputLanguage = language
	if m.output != "" {
		return m.output
	}
	return "<html>document</html>"
}

func (m *mockSynthesizer) WrapSnapshot(ctx context.Context, htmlFragment, css string) string {
	m.snapshotCalled = true
	m.inputHTML = htmlFragment
	m.inputCSS = css
	if m.output != "" {
		return m.output
	}
	return "<html>snapshot</html>"
}

type mockRenderer struct {
	called    bool
	inputHTML string
	output    []byte
	err       error
}

func (m *mockRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	m.called = true
	m.inputHTML = html
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 print"), nil
}

type mockRasterizer struct {
	called    bool
	inputHTML string
	output    []byte
	err       error
}

func (m *mockRasterizer) Rasterize(ctx context.Context, html string) ([]byte, error) {
	m.called = true
	m.inputHTML = html
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 raster"), nil
}

// Test options for dependency injection (not exported).

func withSynthesizer(sy htmlSynthesizer) Option {
	return func(s *Service) {
		s.synthesizer = sy
	}
}

func withRenderer(r pdfRenderer) Option {
	return func(s *Service) {
		s.renderer = r
	}
}

func withRasterizer(r pdfRasterizer) Option {
	return func(s *Service) {
		s.rasterizer = r
	}
}

func testDocument() *ResumeDocument {
	return &ResumeDocument{
		PersonalInfo: PersonalInfo{Name: "Jane Doe", Title: "Engineer"},
		Experiences:  []Experience{{ID: "e1", Company: "Acme"}},
		Skills:       []Skill{{ID: "s1", Name: "Go", Level: 5}},
	}
}

func TestRender_MissingContent(t *testing.T) {
	service := New(withRenderer(&mockRenderer{}), withRasterizer(&mockRasterizer{}))
	defer service.Close()

	tests := []struct {
		name  string
		input Input
	}{
		{name: "empty input", input: Input{}},
		{name: "whitespace html", input: Input{HTML: "   \n\t"}},
		{name: "css without html", input: Input{CSS: "body {}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Render(context.Background(), tt.input)
			if !errors.Is(err, ErrMissingContent) {
				t.Errorf("Render() error = %v, want %v", err, ErrMissingContent)
			}
		})
	}
}

func TestRender_DocumentPath(t *testing.T) {
	synth := &mockSynthesizer{output: "<html>synthesized</html>"}
	renderer := &mockRenderer{output: []byte("%PDF-1.4 test")}
	rasterizer := &mockRasterizer{}

	service := New(withSynthesizer(synth), withRenderer(renderer), withRasterizer(rasterizer))
	defer service.Close()

	artifact, err := service.Render(context.Background(), Input{
		Document: testDocument(),
		Theme:    "teal",
		Language: "fr",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if string(artifact.PDF) != "%PDF-1.4 test" {
		t.Errorf("Render() pdf = %q, want %q", artifact.PDF, "%PDF-1.4 test")
	}
	if artifact.Filename != "Jane_Doe_Resume.pdf" {
		t.Errorf("Render() filename = %q, want %q", artifact.Filename, "Jane_Doe_Resume.pdf")
	}

	if !synth.documentCalled {
		t.Error("synthesizer document path was not called")
	}
	if synth.snapshotCalled {
		t.Error("snapshot path called for a structured document")
	}
	if synth.inputTheme != "teal" || synth.inputLanguage != "fr" {
		t.Errorf("synthesizer got theme=%q language=%q, want teal/fr", synth.inputTheme, synth.inputLanguage)
	}
	if renderer.inputHTML != "<html>synthesized</html>" {
		t.Errorf("renderer inputHTML = %q, want synthesized shell", renderer.inputHTML)
	}
	if rasterizer.called {
		t.Error("rasterizer called even though the print path succeeded")
	}
}

func TestRender_SnapshotPath(t *testing.T) {
	synth := &mockSynthesizer{}
	renderer := &mockRenderer{}

	service := New(withSynthesizer(synth), withRenderer(renderer), withRasterizer(&mockRasterizer{}))
	defer service.Close()

	artifact, err := service.Render(context.Background(), Input{
		HTML: "<div>preview</div>",
		CSS:  ".x { color: red }",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if !synth.snapshotCalled {
		t.Error("snapshot path was not called")
	}
	if synth.documentCalled {
		t.Error("document path called for a snapshot input")
	}
	if synth.inputHTML != "<div>preview</div>" || synth.inputCSS != ".x { color: red }" {
		t.Errorf("snapshot got html=%q css=%q", synth.inputHTML, synth.inputCSS)
	}
	if artifact.Filename != DefaultFilename {
		t.Errorf("Render() filename = %q, want %q", artifact.Filename, DefaultFilename)
	}
}

func TestRender_DocumentTakesPrecedenceOverSnapshot(t *testing.T) {
	synth := &mockSynthesizer{}
	service := New(withSynthesizer(synth), withRenderer(&mockRenderer{}), withRasterizer(&mockRasterizer{}))
	defer service.Close()

	_, err := service.Render(context.Background(), Input{
		Document: testDocument(),
		HTML:     "<div>stale preview</div>",
	})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if !synth.documentCalled || synth.snapshotCalled {
		t.Error("structured document should win over a snapshot in the same request")
	}
}

func TestRender_FallbackToRaster(t *testing.T) {
	renderer := &mockRenderer{err: errors.New("print pipeline exploded")}
	rasterizer := &mockRasterizer{output: []byte("%PDF-1.4 raster")}

	service := New(withRenderer(renderer), withRasterizer(rasterizer))
	defer service.Close()

	artifact, err := service.Render(context.Background(), Input{HTML: "<div>x</div>"})
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if !renderer.called {
		t.Error("renderer was not tried first")
	}
	if !rasterizer.called {
		t.Error("rasterizer was not called after print failure")
	}
	if string(artifact.PDF) != "%PDF-1.4 raster" {
		t.Errorf("Render() pdf = %q, want raster output", artifact.PDF)
	}
	if rasterizer.inputHTML != renderer.inputHTML {
		t.Error("raster fallback rendered different HTML than the print path")
	}
}

func TestRender_BothPathsFail(t *testing.T) {
	renderErr := errors.New("print failed")
	rasterErr := errors.New("raster failed")

	service := New(
		withRenderer(&mockRenderer{err: renderErr}),
		withRasterizer(&mockRasterizer{err: rasterErr}),
	)
	defer service.Close()

	_, err := service.Render(context.Background(), Input{HTML: "<div>x</div>"})
	if !errors.Is(err, ErrPDFGeneration) {
		t.Fatalf("Render() error = %v, want %v", err, ErrPDFGeneration)
	}
	// Both causes must stay diagnosable from the message.
	if !strings.Contains(err.Error(), "print failed") || !strings.Contains(err.Error(), "raster failed") {
		t.Errorf("Render() error %q should mention both failures", err)
	}
}

func TestRender_ValidationError(t *testing.T) {
	rasterizer := &mockRasterizer{}
	service := New(withRenderer(&mockRenderer{}), withRasterizer(rasterizer))
	defer service.Close()

	doc := testDocument()
	doc.Skills = append(doc.Skills, Skill{ID: "s2", Name: "Rust", Level: 9})

	_, err := service.Render(context.Background(), Input{Document: doc})
	if !errors.Is(err, ErrInvalidSkillLevel) {
		t.Errorf("Render() error = %v, want %v", err, ErrInvalidSkillLevel)
	}
	if rasterizer.called {
		t.Error("rasterizer must not run for invalid input")
	}
}

func TestRender_ContextCancelled(t *testing.T) {
	rasterizer := &mockRasterizer{}
	service := New(
		withRenderer(&mockRenderer{err: errors.New("killed mid-render")}),
		withRasterizer(rasterizer),
	)
	defer service.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Render(ctx, Input{HTML: "<div>x</div>"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want %v", err, context.Canceled)
	}
	if rasterizer.called {
		t.Error("raster fallback must not run after cancellation")
	}
}
