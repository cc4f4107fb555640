package resume2pdf

import (
	"context"
	"fmt"
	"html"
	"strings"
)

// htmlSynthesizer defines the contract for producing the self-contained HTML
// document handed to the renderers.
type htmlSynthesizer interface {
	SynthesizeDocument(ctx context.Context, doc ResumeDocument, theme, language string) string
	WrapSnapshot(ctx context.Context, htmlFragment, css string) string
}

// Compile-time interface check.
var _ htmlSynthesizer = (*resumeSynthesizer)(nil)

// interFontLink is the only external reference the synthesized document
// carries; everything else is inlined.
const interFontLink = `<link href="https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700&display=swap" rel="stylesheet">`

// printResetCSS re-asserts print-critical layout rules. It neutralizes the
// interactive preview chrome (border, rounded corners, width constraints)
// and pins down list, flex and grid rendering so a captured DOM snapshot
// paginates the same way the live preview displays. Applied to both the
// structured and the snapshot path so page geometry stays identical.
const printResetCSS = `
* {
  -webkit-font-smoothing: antialiased;
  -moz-osx-font-smoothing: grayscale;
  text-rendering: optimizeLegibility;
  font-feature-settings: "liga", "kern";
  visibility: visible !important;
  opacity: 1 !important;
}

body {
  font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
  margin: 0;
  padding: 0;
  background: white;
  color: #000;
  font-size: 14px;
  line-height: 1.5;
}

.border.rounded-lg {
  border: none !important;
  border-radius: 0 !important;
  margin: 0 !important;
  max-width: none !important;
  width: 100% !important;
  padding: 0 !important;
}

#resume-preview {
  margin: 0 !important;
  padding: 20px !important;
  width: 100% !important;
  max-width: none !important;
  box-sizing: border-box !important;
}

.max-w-4xl {
  max-width: none !important;
  margin: 0 !important;
  padding: 0 !important;
}

.mx-auto {
  margin-left: 0 !important;
  margin-right: 0 !important;
}

ul.list-disc {
  list-style-type: disc !important;
  list-style-position: outside !important;
  padding-left: 1.2rem !important;
  margin-left: 0.5rem !important;
  margin-top: 0.25rem !important;
  margin-bottom: 0.25rem !important;
}

ul.list-disc li {
  line-height: 1.4 !important;
  margin-bottom: 0.125rem !important;
  display: list-item !important;
  padding-left: 0 !important;
  list-style-type: disc !important;
}

.mt-1 { margin-top: 0.25rem !important; }
.pl-4 { padding-left: 1rem !important; }
.ml-2 { margin-left: 0.5rem !important; }
.leading-relaxed { line-height: 1.625 !important; }
.text-xs { font-size: 0.75rem !important; line-height: 1rem !important; }
.font-medium { font-weight: 500 !important; }
.flex { display: flex !important; }
.grid { display: grid !important; }
.md\:grid-cols-2 { grid-template-columns: repeat(2, minmax(0, 1fr)) !important; }
.items-center { align-items: center !important; }
.justify-between { justify-content: space-between !important; }
.flex-wrap { flex-wrap: wrap !important; }
.gap-4 { gap: 1rem !important; }
.gap-2 { gap: 0.5rem !important; }
`

// mutedColor is the fixed date/contact detail color used by the preview.
const mutedColor = "#4b5563"

// resumeSynthesizer builds HTML documents from structured resume data.
// It is stateless and deterministic: identical inputs always produce
// byte-identical output.
type resumeSynthesizer struct{}

// SynthesizeDocument maps a document, theme selector, and language code to a
// single self-contained HTML document. Unknown selectors and language codes
// fall back to the defaults. Every user-supplied string is HTML-escaped
// before interpolation.
func (s *resumeSynthesizer) SynthesizeDocument(ctx context.Context, doc ResumeDocument, theme, language string) string {
	t := ResolveTheme(theme)
	loc, lang := resolveLanguage(language)

	var body strings.Builder
	body.WriteString(`<div class="resume">`)
	renderHeader(&body, doc.PersonalInfo, loc)
	body.WriteString(`<div class="resume-body">`)
	renderSummary(&body, doc.PersonalInfo, loc)
	renderExperience(&body, doc.Experiences, loc)
	renderEducation(&body, doc.Education, loc)
	renderSkills(&body, doc.Skills, loc)
	renderReferences(&body, doc.References, loc)
	body.WriteString(`</div></div>`)

	return documentShell(lang, buildThemeCSS(t), body.String())
}

// WrapSnapshot wraps a pre-rendered HTML fragment and captured CSS in the
// same outer document shell without reinterpreting their content. Used when
// the caller wants pixel-for-pixel fidelity with the live preview.
func (s *resumeSynthesizer) WrapSnapshot(ctx context.Context, htmlFragment, css string) string {
	return documentShell(DefaultLanguage, sanitizeCSS(css), htmlFragment)
}

// documentShell assembles the outer HTML document: meta, web font reference,
// the print reset rules, and any extra style content, then the body.
func documentShell(lang, extraCSS, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, `<html lang="%s">`, html.EscapeString(lang))
	b.WriteString("<head>")
	b.WriteString(`<meta charset="UTF-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	b.WriteString("<title>Resume</title>")
	b.WriteString(interFontLink)
	b.WriteString("<style>")
	b.WriteString(printResetCSS)
	if extraCSS != "" {
		b.WriteString("\n")
		b.WriteString(extraCSS)
	}
	b.WriteString("</style>")
	b.WriteString("</head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>")
	return b.String()
}

// sanitizeCSS escapes style-closing tags so captured CSS cannot break out of
// the shell's <style> block. Only "</style" (any case) is rewritten; all
// other content, including "</" inside string values, stays byte-faithful.
func sanitizeCSS(css string) string {
	lower := strings.ToLower(css)
	i := strings.Index(lower, "</style")
	if i < 0 {
		return css
	}

	var b strings.Builder
	last := 0
	for i >= 0 {
		b.WriteString(css[last:i])
		b.WriteString(`<\/`)
		last = i + len("</")
		next := strings.Index(lower[last:], "</style")
		if next < 0 {
			break
		}
		i = last + next
	}
	b.WriteString(css[last:])
	return b.String()
}

// buildThemeCSS generates the layout and color rules for the structured
// path. Theme colors land in class rules, never inline in user content.
func buildThemeCSS(t Theme) string {
	return fmt.Sprintf(`
.resume { background: #ffffff; }
.resume-header { background-color: %[1]s; padding: 1rem; }
.resume-header .identity { display: flex; align-items: flex-start; gap: 1rem; }
.resume-header .photo {
  width: 4rem; height: 4rem; border-radius: 9999px; flex-shrink: 0;
  border: 2px solid #ffffff; background-size: cover; background-position: center;
  box-shadow: 0 4px 6px -1px rgb(0 0 0 / 0.1);
}
.resume-header h1 { font-size: 1.25rem; font-weight: 700; margin: 0; }
.resume-header .job-title { font-size: 1rem; margin: 0; color: %[2]s; }
.contact-row { margin-top: 0.5rem; display: flex; flex-wrap: wrap; column-gap: 1rem; row-gap: 0.25rem; font-size: 0.75rem; }
.contact-row .contact-item { display: flex; align-items: center; }
.contact-row .contact-item .icon { margin-right: 0.25rem; }
.resume-body { padding: 1rem; }
.section { margin-bottom: 1rem; }
.section:last-child { margin-bottom: 0; }
.section-title {
  font-size: 1rem; font-weight: 600; margin: 0 0 0.25rem 0;
  padding-bottom: 0.5rem; border-bottom: 1px solid %[3]s;
}
.section-text { font-size: 0.75rem; line-height: 1.625; margin: 0; }
.entry { margin-bottom: 0.75rem; }
.entry-head { display: flex; justify-content: space-between; align-items: flex-start; }
.entry-head h3 { font-size: 0.875rem; font-weight: 500; margin: 0; }
.entry-head .entry-org { font-size: 0.75rem; margin: 0; }
.entry-dates { font-size: 0.75rem; color: %[4]s; margin: 0; }
.achievements-label { font-size: 0.75rem; font-weight: 500; margin: 0; }
ul.achievements {
  list-style-type: disc; list-style-position: outside; font-size: 0.75rem;
  line-height: 1.625; padding-left: 1rem; margin: 0.25rem 0 0.25rem 0.5rem;
}
.skill-list { display: flex; flex-wrap: wrap; gap: 0.25rem; }
.skill-pill {
  padding: 0.25rem 0.5rem; border-radius: 9999px; font-size: 0.75rem;
  background-color: %[1]s; color: %[2]s;
}
.skill-pill.expert { background-color: %[5]s; color: #ffffff; }
.reference-grid { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 0.75rem; }
.reference { font-size: 0.75rem; }
.reference p { margin: 0; }
.reference .ref-name { font-weight: 500; }
.reference .ref-contact { color: %[4]s; }
`, t.Secondary, t.Text, t.Border, mutedColor, t.Primary)
}

func renderHeader(b *strings.Builder, info PersonalInfo, loc stringTable) {
	b.WriteString(`<header class="resume-header">`)
	b.WriteString(`<div class="identity">`)
	if info.Photo != "" {
		fmt.Fprintf(b, `<div class="photo" style="background-image: url('%s')"></div>`, escapeCSSURL(info.Photo))
	}
	b.WriteString("<div>")
	fmt.Fprintf(b, "<h1>%s</h1>", escapeOrDefault(info.Name, loc.YourName))
	fmt.Fprintf(b, `<p class="job-title">%s</p>`, escapeOrDefault(info.Title, loc.YourJobTitle))
	b.WriteString("</div></div>")

	b.WriteString(`<div class="contact-row">`)
	writeContactItem(b, "✉️", info.Email)
	writeContactItem(b, "\U0001F4F1", info.Phone)
	writeContactItem(b, "\U0001F4CD", info.Location)
	writeContactItem(b, "\U0001F517", info.Website)
	b.WriteString("</div>")
	b.WriteString("</header>")
}

func writeContactItem(b *strings.Builder, icon, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, `<div class="contact-item"><span class="icon">%s</span><span>%s</span></div>`, icon, html.EscapeString(value))
}

func renderSummary(b *strings.Builder, info PersonalInfo, loc stringTable) {
	if strings.TrimSpace(info.Summary) == "" {
		return
	}
	b.WriteString(`<section class="section">`)
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, loc.ProfessionalSummary)
	fmt.Fprintf(b, `<p class="section-text">%s</p>`, html.EscapeString(info.Summary))
	b.WriteString("</section>")
}

// experienceHasContent mirrors the preview's display rule: an entry shows
// only when it names a company or a position.
func experienceHasContent(e Experience) bool {
	return strings.TrimSpace(e.Company) != "" || strings.TrimSpace(e.Position) != ""
}

func renderExperience(b *strings.Builder, entries []Experience, loc stringTable) {
	any := false
	for _, e := range entries {
		if experienceHasContent(e) {
			any = true
			break
		}
	}
	if !any {
		return
	}

	b.WriteString(`<section class="section">`)
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, loc.Experience)
	for _, e := range entries {
		if !experienceHasContent(e) {
			continue
		}
		b.WriteString(`<div class="entry">`)
		b.WriteString(`<div class="entry-head"><div>`)
		fmt.Fprintf(b, "<h3>%s</h3>", escapeOrDefault(e.Position, loc.Position))
		fmt.Fprintf(b, `<p class="entry-org">%s</p>`, escapeOrDefault(e.Company, loc.Company))
		b.WriteString("</div>")
		fmt.Fprintf(b, `<p class="entry-dates">%s - %s</p>`,
			escapeOrDefault(e.StartDate, loc.StartDate), escapeOrDefault(e.EndDate, loc.EndDate))
		b.WriteString("</div>")

		if e.Description != "" {
			fmt.Fprintf(b, `<p class="section-text mt-1">%s</p>`, html.EscapeString(e.Description))
		}

		achievements := nonBlank(e.Achievements)
		if len(achievements) > 0 {
			b.WriteString(`<div class="mt-1">`)
			fmt.Fprintf(b, `<p class="achievements-label">%s</p>`, loc.KeyAchievements)
			b.WriteString(`<ul class="achievements">`)
			for _, a := range achievements {
				fmt.Fprintf(b, "<li>%s</li>", html.EscapeString(a))
			}
			b.WriteString("</ul></div>")
		}
		b.WriteString("</div>")
	}
	b.WriteString("</section>")
}

func educationHasContent(e Education) bool {
	return strings.TrimSpace(e.Institution) != "" || strings.TrimSpace(e.Degree) != ""
}

func renderEducation(b *strings.Builder, entries []Education, loc stringTable) {
	any := false
	for _, e := range entries {
		if educationHasContent(e) {
			any = true
			break
		}
	}
	if !any {
		return
	}

	b.WriteString(`<section class="section">`)
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, loc.Education)
	for _, e := range entries {
		if !educationHasContent(e) {
			continue
		}
		b.WriteString(`<div class="entry">`)
		b.WriteString(`<div class="entry-head"><div>`)
		degree := html.EscapeString(e.Degree)
		if strings.TrimSpace(e.Field) != "" {
			degree += " " + loc.In + " " + html.EscapeString(e.Field)
		}
		fmt.Fprintf(b, "<h3>%s</h3>", degree)
		fmt.Fprintf(b, `<p class="entry-org">%s</p>`, escapeOrDefault(e.Institution, loc.Institution))
		b.WriteString("</div>")
		fmt.Fprintf(b, `<p class="entry-dates">%s - %s</p>`,
			escapeOrDefault(e.StartDate, loc.StartDate), escapeOrDefault(e.EndDate, loc.EndDate))
		b.WriteString("</div>")

		if e.Description != "" {
			fmt.Fprintf(b, `<p class="section-text mt-1">%s</p>`, html.EscapeString(e.Description))
		}
		b.WriteString("</div>")
	}
	b.WriteString("</section>")
}

// expertLevel is the threshold at which a skill pill switches to the
// primary-colored variant.
const expertLevel = 4

func renderSkills(b *strings.Builder, entries []Skill, loc stringTable) {
	any := false
	for _, s := range entries {
		if strings.TrimSpace(s.Name) != "" {
			any = true
			break
		}
	}
	if !any {
		return
	}

	b.WriteString(`<section class="section">`)
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, loc.Skills)
	b.WriteString(`<div class="skill-list">`)
	for _, s := range entries {
		if strings.TrimSpace(s.Name) == "" {
			continue
		}
		class := "skill-pill"
		if ClampSkillLevel(s.Level) >= expertLevel {
			class = "skill-pill expert"
		}
		fmt.Fprintf(b, `<div class="%s">%s</div>`, class, html.EscapeString(s.Name))
	}
	b.WriteString("</div></section>")
}

func renderReferences(b *strings.Builder, entries []Reference, loc stringTable) {
	any := false
	for _, r := range entries {
		if strings.TrimSpace(r.Name) != "" {
			any = true
			break
		}
	}
	if !any {
		return
	}

	b.WriteString(`<section class="section">`)
	fmt.Fprintf(b, `<h2 class="section-title">%s</h2>`, loc.References)
	b.WriteString(`<div class="reference-grid">`)
	for _, r := range entries {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		b.WriteString(`<div class="reference">`)
		fmt.Fprintf(b, `<p class="ref-name">%s</p>`, html.EscapeString(r.Name))
		if r.Position != "" && r.Company != "" {
			fmt.Fprintf(b, "<p>%s %s %s</p>", html.EscapeString(r.Position), loc.At, html.EscapeString(r.Company))
		}
		if r.Email != "" || r.Phone != "" {
			b.WriteString(`<p class="ref-contact">`)
			b.WriteString(html.EscapeString(r.Email))
			if r.Email != "" && r.Phone != "" {
				b.WriteString(" | ")
			}
			b.WriteString(html.EscapeString(r.Phone))
			b.WriteString("</p>")
		}
		b.WriteString("</div>")
	}
	b.WriteString("</div></section>")
}

// escapeOrDefault escapes a user value, substituting a localized placeholder
// when the value is empty.
func escapeOrDefault(value, fallback string) string {
	if value == "" {
		return html.EscapeString(fallback)
	}
	return html.EscapeString(value)
}

// escapeCSSURL escapes a URL for safe use inside url('...').
func escapeCSSURL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}

// nonBlank filters out blank and whitespace-only strings, preserving order.
func nonBlank(items []string) []string {
	var out []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}
