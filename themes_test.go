package resume2pdf

import "testing"

func TestResolveTheme(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     string // expected primary color
	}{
		{name: "known selector", selector: "teal", want: "#0d9488"},
		{name: "default blue", selector: "blue", want: "#2563eb"},
		{name: "unknown falls back", selector: "mauve", want: "#2563eb"},
		{name: "empty falls back", selector: "", want: "#2563eb"},
		{name: "case sensitive", selector: "Blue", want: "#2563eb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTheme(tt.selector); got.Primary != tt.want {
				t.Errorf("ResolveTheme(%q).Primary = %q, want %q", tt.selector, got.Primary, tt.want)
			}
		})
	}
}

func TestThemes_Complete(t *testing.T) {
	if len(themes) != 15 {
		t.Errorf("theme table has %d entries, want 15", len(themes))
	}
	for name, theme := range themes {
		if theme.Primary == "" || theme.Secondary == "" || theme.Text == "" || theme.Border == "" {
			t.Errorf("theme %q has empty color roles: %+v", name, theme)
		}
	}
	if _, ok := themes[DefaultThemeName]; !ok {
		t.Errorf("default theme %q missing from table", DefaultThemeName)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(themes) {
		t.Errorf("ThemeNames() returned %d names, want %d", len(names), len(themes))
	}
}
