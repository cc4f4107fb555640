package resume2pdf

// Theme resolves a selector key to four concrete color roles. Themes are
// process-wide immutable constants; documents store only the selector key so
// the same document renders consistently everywhere.
type Theme struct {
	Primary   string
	Secondary string
	Text      string
	Border    string
}

// DefaultThemeName is used when a selector is unrecognized.
const DefaultThemeName = "blue"

// themes is the fixed selector table. Read-only after init; safe to share
// across concurrent renders.
var themes = map[string]Theme{
	"blue":    {Primary: "#2563eb", Secondary: "#dbeafe", Text: "#2563eb", Border: "#2563eb"},
	"green":   {Primary: "#16a34a", Secondary: "#dcfce7", Text: "#16a34a", Border: "#16a34a"},
	"purple":  {Primary: "#9333ea", Secondary: "#f3e8ff", Text: "#9333ea", Border: "#9333ea"},
	"red":     {Primary: "#dc2626", Secondary: "#fee2e2", Text: "#dc2626", Border: "#dc2626"},
	"gray":    {Primary: "#374151", Secondary: "#e5e7eb", Text: "#374151", Border: "#374151"},
	"indigo":  {Primary: "#4f46e5", Secondary: "#e0e7ff", Text: "#4f46e5", Border: "#4f46e5"},
	"teal":    {Primary: "#0d9488", Secondary: "#ccfbf1", Text: "#0d9488", Border: "#0d9488"},
	"orange":  {Primary: "#ea580c", Secondary: "#fed7aa", Text: "#ea580c", Border: "#ea580c"},
	"pink":    {Primary: "#db2777", Secondary: "#fce7f3", Text: "#db2777", Border: "#db2777"},
	"cyan":    {Primary: "#0891b2", Secondary: "#cffafe", Text: "#0891b2", Border: "#0891b2"},
	"emerald": {Primary: "#059669", Secondary: "#d1fae5", Text: "#059669", Border: "#059669"},
	"slate":   {Primary: "#334155", Secondary: "#e2e8f0", Text: "#334155", Border: "#334155"},
	"amber":   {Primary: "#d97706", Secondary: "#fef3c7", Text: "#d97706", Border: "#d97706"},
	"lime":    {Primary: "#65a30d", Secondary: "#ecfccb", Text: "#65a30d", Border: "#65a30d"},
	"rose":    {Primary: "#e11d48", Secondary: "#ffe4e6", Text: "#e11d48", Border: "#e11d48"},
}

// ResolveTheme returns the theme for a selector, falling back to the default
// theme when the selector is unknown or empty.
func ResolveTheme(selector string) Theme {
	if t, ok := themes[selector]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// ThemeNames returns the known selector keys (unordered).
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	return names
}
