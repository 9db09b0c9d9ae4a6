package model

// ThemeKey is the durable store key of the theme preference
const ThemeKey = "ff_theme"

// Theme is the page color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts only the two known values
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	default:
		return "", false
	}
}

// Flip returns the opposite theme. Anything but light flips to light.
func (t Theme) Flip() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
