package in_memory

import (
	"context"
	"sync"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

type ThemeStorage struct {
	mu     sync.RWMutex
	themes map[string]model.Theme
}

func NewThemeStorage() *ThemeStorage {
	return &ThemeStorage{
		themes: make(map[string]model.Theme),
	}
}

func (t *ThemeStorage) GetTheme(_ context.Context, chatID string) (model.Theme, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	theme, ok := t.themes[chatID]
	if !ok {
		return "", model.ErrThemeNotSet
	}
	return theme, nil
}

func (t *ThemeStorage) SetTheme(_ context.Context, chatID string, theme model.Theme) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.themes[chatID] = theme
	return nil
}
