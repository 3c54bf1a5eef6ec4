package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePalette(t *testing.T) {
	tests := []struct {
		theme string
		want  string
	}{
		{theme: "red", want: "fruity"},
		{theme: "blue", want: "monokai"},
		{theme: "pink", want: "pastie"},
		{theme: "default", want: "monokai"},
		{theme: " RED ", want: "fruity"},
		{theme: "", want: DefaultPalette},
		{theme: "green", want: DefaultPalette},
		{theme: "monokai", want: DefaultPalette},
	}
	for _, tt := range tests {
		t.Run(tt.theme, func(t *testing.T) {
			require.Equal(t, tt.want, ResolvePalette(tt.theme))
		})
	}
}

func TestParseTheme(t *testing.T) {
	theme, ok := ParseTheme("Pink")
	require.True(t, ok)
	require.Equal(t, ThemePink, theme)

	theme, ok = ParseTheme("purple")
	require.False(t, ok)
	require.Equal(t, ThemeDefault, theme)
}

func TestCompletionDisplayText(t *testing.T) {
	require.Equal(t, "hello", CompletionText("hello").DisplayText())

	failed := CompletionFailure(errors.New("dial tcp: timeout"))
	require.True(t, failed.Failed())
	require.Equal(t, "⚡ *System Error:* Connection interrupted.\nError: dial tcp: timeout", failed.DisplayText())
}
