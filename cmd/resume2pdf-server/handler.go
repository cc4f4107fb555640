package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	resume2pdf "github.com/alnah/go-resume2pdf"
)

// renderer is the slice of the rendering service the HTTP layer depends on.
// Narrow on purpose so tests can stub it without a browser.
type renderer interface {
	Render(ctx context.Context, input resume2pdf.Input) (*resume2pdf.Artifact, error)
}

// poolRenderer adapts a ServicePool to the renderer interface, bounding how
// many browser processes run concurrently.
type poolRenderer struct {
	pool *resume2pdf.ServicePool
}

var _ renderer = (*poolRenderer)(nil)

func (p *poolRenderer) Render(ctx context.Context, input resume2pdf.Input) (*resume2pdf.Artifact, error) {
	svc := p.pool.Acquire()
	defer p.pool.Release(svc)
	return svc.Render(ctx, input)
}

// renderRequest is the POST /api/generate-pdf body. Either a structured
// document or a pre-rendered HTML snapshot must be present.
type renderRequest struct {
	ResumeDocument *resume2pdf.ResumeDocument `json:"resumeDocument"`
	Theme          string                     `json:"theme"`
	Language       string                     `json:"language"`
	HTML           string                     `json:"html"`
	CSS            string                     `json:"css"`
	Filename       string                     `json:"filename"`
}

// newApp builds the fiber application with its middleware and routes.
func newApp(r renderer, timeout time.Duration, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "resume2pdf-server",
		DisableStartupMessage: true,
		BodyLimit:             10 << 20, // photos arrive inline as data URLs
		ReadTimeout:           timeout + 10*time.Second,
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(requestLogger(log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/generate-pdf", handleGeneratePDF(r, timeout))

	return app
}

// requestLogger logs one structured line per request.
func requestLogger(log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			slog.String("id", requestID(c)),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", c.Response().StatusCode()),
			slog.Duration("duration", time.Since(start)),
		)
		return err
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}

// handleGeneratePDF renders a resume to PDF and returns it as a download.
//
// Responses:
//   - 200 application/pdf with a Content-Disposition attachment
//   - 400 when neither a document nor HTML content is provided
//   - 500 when both rendering paths fail
func handleGeneratePDF(r renderer, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renderRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to generate PDF",
				"message": err.Error(),
			})
		}

		input := resume2pdf.Input{
			Document: req.ResumeDocument,
			Theme:    req.Theme,
			Language: req.Language,
			HTML:     req.HTML,
			CSS:      req.CSS,
			Filename: req.Filename,
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		artifact, err := r.Render(ctx, input)
		if err != nil {
			if errors.Is(err, resume2pdf.ErrMissingContent) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "HTML content is required",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to generate PDF",
				"message": err.Error(),
			})
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		return c.Send(artifact.PDF)
	}
}
