package resume2pdf

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// encodeTestJPEG produces a small solid-color JPEG for embedding tests.
func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestBuildImagePDF(t *testing.T) {
	img := encodeTestJPEG(t, 80, 120)

	tests := []struct {
		name    string
		widthPx float64
		height  float64
	}{
		{name: "print page dimensions", widthPx: 794, height: 1123},
		{name: "taller than a page", widthPx: 794, height: 3200},
		{name: "wider than tall", widthPx: 1600, height: 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdf, err := buildImagePDF(img, tt.widthPx, tt.height)
			if err != nil {
				t.Fatalf("buildImagePDF() unexpected error: %v", err)
			}
			if !bytes.HasPrefix(pdf, []byte("%PDF")) {
				t.Errorf("output does not start with a PDF header: %q", pdf[:min(8, len(pdf))])
			}
		})
	}
}

func TestBuildImagePDF_InvalidInput(t *testing.T) {
	img := encodeTestJPEG(t, 10, 10)

	if _, err := buildImagePDF(img, 0, 100); err == nil {
		t.Error("zero width must be rejected")
	}
	if _, err := buildImagePDF(img, 100, -5); err == nil {
		t.Error("negative height must be rejected")
	}
	if _, err := buildImagePDF([]byte("not a jpeg"), 100, 100); err == nil {
		t.Error("undecodable capture must be rejected")
	}
}

func TestRasterFitMath(t *testing.T) {
	// The print viewport width maps to just over the A4 width, so the fit
	// ratio is driven by width and the image lands flush with the page top.
	widthMM := float64(printViewportWidth) * pxToMM
	heightMM := float64(printViewportHeight) * pxToMM

	ratio := pageWidthMM / widthMM
	if hr := pageHeightMM / heightMM; hr < ratio {
		ratio = hr
	}

	if ratio >= 1.0001 || ratio < 0.99 {
		t.Errorf("fit ratio for the staging viewport = %f, expected close to 1", ratio)
	}

	scaledW := widthMM * ratio
	x := (pageWidthMM - scaledW) / 2
	if x < 0 || x > 1 {
		t.Errorf("horizontal offset = %fmm, expected near-zero centering", x)
	}
}
