package key_value

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

type ThemeStorage struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewThemeStorage(rdb *redis.Client, keyPrefix string) *ThemeStorage {
	return &ThemeStorage{
		rdb:       rdb,
		keyPrefix: keyPrefix,
	}
}

func (t *ThemeStorage) GetTheme(ctx context.Context, chatID string) (model.Theme, error) {
	themeKey := t.getThemeKey(chatID)
	raw, err := t.rdb.Get(ctx, themeKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrThemeNotSet
		}
		return "", fmt.Errorf("failed to get theme %s: %w", themeKey, err)
	}
	theme, ok := model.ParseTheme(raw)
	if !ok {
		return "", fmt.Errorf("failed to parse theme %q stored at %s", raw, themeKey)
	}
	return theme, nil
}

func (t *ThemeStorage) SetTheme(ctx context.Context, chatID string, theme model.Theme) error {
	themeKey := t.getThemeKey(chatID)
	if err := t.rdb.Set(ctx, themeKey, string(theme), 0).Err(); err != nil {
		return fmt.Errorf("failed to save theme %s: %w", themeKey, err)
	}
	return nil
}

func (t *ThemeStorage) getThemeKey(chatID string) string {
	return fmt.Sprintf("%stheme_%s", t.keyPrefix, chatID)
}
