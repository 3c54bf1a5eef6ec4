package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

type brokenThemeStorage struct{}

func (brokenThemeStorage) GetTheme(context.Context, string) (model.Theme, error) {
	return "", errTransport
}

func (brokenThemeStorage) SetTheme(context.Context, string, model.Theme) error {
	return errTransport
}

func TestThemeUsecase_DefaultsWhenNotSet(t *testing.T) {
	themes := newTestThemes()

	require.Equal(t, model.ThemeDefault, themes.Theme(context.Background(), 1))
	require.Equal(t, model.DefaultPalette, themes.Palette(context.Background(), 1))
}

func TestThemeUsecase_SetThemeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	themes := newTestThemes()

	first, err := themes.SetTheme(ctx, 1, "red")
	require.NoError(t, err)
	second, err := themes.SetTheme(ctx, 1, "red")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, model.ThemeRed, themes.Theme(ctx, 1))
	require.Equal(t, "fruity", themes.Palette(ctx, 1))
	require.Equal(t, model.ThemeDefault, themes.Theme(ctx, 2))
}

func TestThemeUsecase_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	themes := newTestThemes()

	_, err := themes.SetTheme(ctx, 1, "pink")
	require.NoError(t, err)
	_, err = themes.SetTheme(ctx, 1, "BLUE")
	require.NoError(t, err)

	require.Equal(t, model.ThemeBlue, themes.Theme(ctx, 1))
}

func TestThemeUsecase_InvalidTheme(t *testing.T) {
	ctx := context.Background()
	themes := newTestThemes()

	_, err := themes.SetTheme(ctx, 1, "green")
	require.ErrorIs(t, err, ErrInvalidTheme)
	require.Equal(t, model.ThemeDefault, themes.Theme(ctx, 1))
}

func TestThemeUsecase_StorageErrors(t *testing.T) {
	var buf bytes.Buffer
	themes := NewThemeUsecase(ThemeUsecaseDeps{ThemeStorage: brokenThemeStorage{}, Logger: zerolog.New(&buf)})

	require.Equal(t, model.ThemeDefault, themes.Theme(context.Background(), 1))
	require.Contains(t, buf.String(), "failed to get chat theme")

	_, err := themes.SetTheme(context.Background(), 1, "red")
	require.ErrorIs(t, err, errTransport)
}
