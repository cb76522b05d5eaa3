// Package theme holds the light and dark colour schemes and turns them into
// CSS custom properties.
package theme

import (
	"strings"
	"unicode"
)

// Theme names a colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts "light" or "dark" (case-insensitive).
func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark scheme.
func (t Theme) IsDark() bool { return t == Dark }

// Color is one named entry of a palette.
type Color struct {
	Name  string // camelCase, e.g. "textPrimary"
	Value string
}

// Palette is an ordered list of colours.
type Palette []Color

var lightPalette = Palette{
	{"primary", "#FF3377"},
	{"primaryHover", "#FF5522"},
	{"secondary", "#AA66DD"},
	{"accent", "#FF55BB"},
	{"success", "#0077DD"},
	{"warning", "#FFCC11"},
	{"error", "#FF5522"},

	{"textPrimary", "#1f2937"},
	{"textSecondary", "#6b7280"},
	{"textMuted", "#9ca3af"},
	{"textWhite", "#ffffff"},

	{"bgPrimary", "#fef7f0"},
	{"bgSecondary", "#fff0e6"},
	{"bgTertiary", "#ffe9d9"},
	{"bgDark", "#1f2937"},
	{"bgDarker", "#111827"},

	{"borderLight", "#e5e7eb"},
	{"borderMedium", "#d1d5db"},
	{"borderDark", "#374151"},
}

var darkPalette = Palette{
	{"primary", "#3344AA"},
	{"primaryHover", "#4455BB"},
	{"secondary", "#881188"},
	{"accent", "#DD0088"},
	{"success", "#00AABB"},
	{"warning", "#FFCC11"},
	{"error", "#DD2200"},

	{"textPrimary", "#DDDDFF"},
	{"textSecondary", "#BBBBBB"},
	{"textMuted", "#999999"},
	{"textWhite", "#ffffff"},

	{"bgPrimary", "#1a1a2e"},
	{"bgSecondary", "#16213e"},
	{"bgTertiary", "#0f3460"},
	{"bgDark", "#0a0a0a"},
	{"bgDarker", "#000000"},

	{"borderLight", "#333366"},
	{"borderMedium", "#444477"},
	{"borderDark", "#555588"},
}

// PaletteFor returns a copy of the palette for t. Unknown themes get the light one.
func PaletteFor(t Theme) Palette {
	src := lightPalette
	if t == Dark {
		src = darkPalette
	}
	out := make(Palette, len(src))
	copy(out, src)
	return out
}

// VarName converts a camelCase colour name to a CSS custom property name,
// e.g. "textPrimary" -> "--text-primary".
func VarName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	b.WriteString("--")
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CSSVariables renders the palette of t as a :root rule.
func CSSVariables(t Theme) string {
	var b strings.Builder
	b.WriteString(":root{")
	for _, c := range PaletteFor(t) {
		b.WriteString(VarName(c.Name))
		b.WriteByte(':')
		b.WriteString(c.Value)
		b.WriteByte(';')
	}
	b.WriteString("color-scheme:")
	b.WriteString(string(normalize(t)))
	b.WriteString(";}")
	return b.String()
}

// Resolve picks the theme to use: a valid stored preference first, then the
// client's prefers-color-scheme hint, then fallback.
func Resolve(stored, hint string, fallback Theme) Theme {
	if t, ok := Parse(stored); ok {
		return t
	}
	if t, ok := Parse(hint); ok {
		return t
	}
	return normalize(fallback)
}

func normalize(t Theme) Theme {
	if t == Dark {
		return Dark
	}
	return Light
}
