package key_value

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

func newTestStorage(t *testing.T) (*ThemeStorage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewThemeStorage(rdb, "codeninja:"), mr
}

func TestThemeStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t)

	_, err := storage.GetTheme(ctx, "-100123")
	require.ErrorIs(t, err, model.ErrThemeNotSet)

	require.NoError(t, storage.SetTheme(ctx, "-100123", model.ThemeBlue))
	theme, err := storage.GetTheme(ctx, "-100123")
	require.NoError(t, err)
	require.Equal(t, model.ThemeBlue, theme)

	stored, err := mr.Get("codeninja:theme_-100123")
	require.NoError(t, err)
	require.Equal(t, "blue", stored)
}

func TestThemeStorageRejectsCorruptValue(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t)

	require.NoError(t, mr.Set("codeninja:theme_7", "rainbow"))

	_, err := storage.GetTheme(ctx, "7")
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrThemeNotSet)
}

func TestThemeStorageConnectionError(t *testing.T) {
	ctx := context.Background()
	storage, mr := newTestStorage(t)
	mr.Close()

	_, err := storage.GetTheme(ctx, "7")
	require.Error(t, err)
	require.NotErrorIs(t, err, model.ErrThemeNotSet)
	require.Error(t, storage.SetTheme(ctx, "7", model.ThemeRed))
}
