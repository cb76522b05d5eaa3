package theme

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	if th, ok := Parse(" Dark "); !ok || th != Dark {
		t.Fatalf("expected dark, got %q (ok=%v)", th, ok)
	}
	if _, ok := Parse("sepia"); ok {
		t.Fatalf("expected unknown theme to be rejected")
	}
}

func TestToggle(t *testing.T) {
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Fatalf("toggle should flip between light and dark")
	}
}

func TestVarName(t *testing.T) {
	cases := map[string]string{
		"primary":      "--primary",
		"primaryHover": "--primary-hover",
		"bgDarker":     "--bg-darker",
	}
	for in, want := range cases {
		if got := VarName(in); got != want {
			t.Fatalf("VarName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCSSVariables(t *testing.T) {
	css := CSSVariables(Dark)
	if !strings.HasPrefix(css, ":root{") || !strings.HasSuffix(css, "}") {
		t.Fatalf("unexpected css %q", css)
	}
	if !strings.Contains(css, "--bg-primary:#1a1a2e;") {
		t.Fatalf("dark palette missing: %q", css)
	}
	if !strings.Contains(css, "color-scheme:dark;") {
		t.Fatalf("color-scheme missing: %q", css)
	}
	if !strings.Contains(CSSVariables(Light), "--primary:#FF3377;") {
		t.Fatalf("light palette missing")
	}
}

func TestPalettesShareNames(t *testing.T) {
	light, dark := PaletteFor(Light), PaletteFor(Dark)
	if len(light) != len(dark) {
		t.Fatalf("palettes differ in size: %d vs %d", len(light), len(dark))
	}
	for i := range light {
		if light[i].Name != dark[i].Name {
			t.Fatalf("palette entry %d differs: %s vs %s", i, light[i].Name, dark[i].Name)
		}
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("dark", "light", Light); got != Dark {
		t.Fatalf("stored preference should win, got %q", got)
	}
	if got := Resolve("", "dark", Light); got != Dark {
		t.Fatalf("client hint should be used without a preference, got %q", got)
	}
	if got := Resolve("bogus", "", Dark); got != Dark {
		t.Fatalf("fallback should apply, got %q", got)
	}
	if got := Resolve("", "", ""); got != Light {
		t.Fatalf("empty fallback should mean light, got %q", got)
	}
}
