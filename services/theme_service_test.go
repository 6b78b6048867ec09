package services

import (
	"strings"
	"testing"

	"github.com/Asip90/User-View-OpenFood/entity"
)

func TestThemeCSS(t *testing.T) {
	css := ThemeCSS(entity.Customization{
		PrimaryColor:   "#ff6600",
		SecondaryColor: "#00aa55",
		FontFamily:     "Playfair Display",
	})
	for _, want := range []string{
		"--color-primary: #ff6600;",
		"--color-secondary: #00aa55;",
		"--font-family: Playfair Display;",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("theme css missing %q:\n%s", want, css)
		}
	}
}

func TestThemeCSSDefaults(t *testing.T) {
	css := ThemeCSS(entity.Customization{})
	if !strings.Contains(css, "--font-family: Inter;") {
		t.Errorf("empty customization should fall back to defaults:\n%s", css)
	}
}

func TestThemeCSSStripsEscapes(t *testing.T) {
	css := ThemeCSS(entity.Customization{PrimaryColor: "red;}body{display:none"})
	if strings.Contains(css, "}body{") {
		t.Errorf("declaration escape not stripped:\n%s", css)
	}
}
