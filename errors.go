package resume2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrMissingContent = errors.New("either a resume document or HTML content is required")
	ErrBrowserLaunch  = errors.New("failed to launch browser")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrRasterize      = errors.New("raster fallback failed")

	// Document validation errors.
	ErrEmptyEntryID      = errors.New("entry id cannot be empty")
	ErrDuplicateEntryID  = errors.New("duplicate entry id")
	ErrInvalidSkillLevel = errors.New("skill level must be between 1 and 5")
)
