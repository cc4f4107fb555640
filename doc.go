// Package resume2pdf renders resume documents to PDF using headless Chrome.
//
// # Quick Start
//
// Create a service, render a document, and close when done:
//
//	svc := resume2pdf.New()
//	defer svc.Close()
//
//	doc := resume2pdf.NewResumeDocument()
//	doc.PersonalInfo.Name = "Jane Doe"
//
//	artifact, err := svc.Render(ctx, resume2pdf.Input{
//	    Document: &doc,
//	    Theme:    "blue",
//	    Language: "en",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(artifact.Filename, artifact.PDF, 0644)
//
// # Rendering Paths
//
// Two inputs are accepted: a structured ResumeDocument (synthesized into a
// self-contained HTML document using a color theme and locale), or a raw
// HTML+CSS snapshot of an already-rendered preview (wrapped in the same
// document shell without reinterpretation).
//
// The primary renderer drives a headless Chrome process per request and
// emits a paginated vector PDF. When that path fails, a raster fallback
// stages the same HTML off-screen, captures an oversampled screenshot, and
// embeds it into a single A4 page. The fallback output is visually faithful
// but not text-selectable.
//
// # Browser Discovery
//
// The browser binary is resolved through a layered candidate chain: an
// explicit override, a versioned cache directory scan, rod's managed
// browser, then well-known system install locations. Constrained
// environments (containers, serverless) switch to a reduced
// process-isolation argument set. See BrowserConfig.
//
// # Parallel Rendering
//
// Use ServicePool to bound concurrent renders:
//
//	pool := resume2pdf.NewServicePool(resume2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	svc := pool.Acquire()
//	defer pool.Release(svc)
package resume2pdf
