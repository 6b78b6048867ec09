package services

import (
	"fmt"
	"strings"

	"github.com/Asip90/User-View-OpenFood/entity"
)

const (
	defaultPrimaryColor   = "#b45309"
	defaultSecondaryColor = "#15803d"
	defaultFontFamily     = "Inter"
)

// ThemeCSS renders the restaurant customization as CSS custom properties.
// This is the one-way theming side channel: pushed after a successful menu
// fetch, never rolled back.
func ThemeCSS(c entity.Customization) string {
	primary := cssValue(c.PrimaryColor, defaultPrimaryColor)
	secondary := cssValue(c.SecondaryColor, defaultSecondaryColor)
	font := cssValue(c.FontFamily, defaultFontFamily)

	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --color-primary: %s;\n", primary)
	fmt.Fprintf(&b, "  --color-secondary: %s;\n", secondary)
	fmt.Fprintf(&b, "  --font-family: %s;\n", font)
	b.WriteString("}\n")
	return b.String()
}

// cssValue falls back to the default and strips characters that would
// escape the declaration.
func cssValue(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '\n', '\r':
			return -1
		}
		return r
	}, v)
}
