package model

import (
	"errors"
	"strings"
)

var ErrThemeNotSet = errors.New("theme not set for chat")

type Theme string

const (
	ThemeRed     = Theme("red")
	ThemeBlue    = Theme("blue")
	ThemePink    = Theme("pink")
	ThemeDefault = Theme("default")

	DefaultPalette = "monokai"
)

var themePalettes = map[Theme]string{
	ThemeRed:     "fruity",
	ThemeBlue:    "monokai",
	ThemePink:    "pastie",
	ThemeDefault: DefaultPalette,
}

// Themes lists the choices accepted by /theme in display order.
func Themes() []Theme {
	return []Theme{ThemeRed, ThemeBlue, ThemePink, ThemeDefault}
}

func ParseTheme(s string) (Theme, bool) {
	theme := Theme(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := themePalettes[theme]; !ok {
		return ThemeDefault, false
	}
	return theme, true
}

// ResolvePalette maps a theme name to a highlighting style. Anything unknown,
// including the empty string, resolves to DefaultPalette.
func ResolvePalette(theme string) string {
	if palette, ok := themePalettes[Theme(strings.ToLower(strings.TrimSpace(theme)))]; ok {
		return palette
	}
	return DefaultPalette
}

func (t Theme) Palette() string {
	return ResolvePalette(string(t))
}
