package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

var (
	ErrInvalidTheme = errors.New("invalid theme")
)

type ThemeStorage interface {
	GetTheme(ctx context.Context, chatID string) (model.Theme, error)
	SetTheme(ctx context.Context, chatID string, theme model.Theme) error
}

type ThemeUsecaseDeps struct {
	ThemeStorage ThemeStorage
	Logger       zerolog.Logger
}

type ThemeUsecase struct {
	ThemeUsecaseDeps
}

func NewThemeUsecase(deps ThemeUsecaseDeps) *ThemeUsecase {
	return &ThemeUsecase{ThemeUsecaseDeps: deps}
}

// Theme returns the chat's stored theme. Chats without a preference, and
// chats whose preference cannot be read, get the default theme.
func (t *ThemeUsecase) Theme(ctx context.Context, chatID int64) model.Theme {
	theme, err := t.ThemeStorage.GetTheme(ctx, chatKey(chatID))
	if err != nil {
		if !errors.Is(err, model.ErrThemeNotSet) {
			t.Logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to get chat theme")
		}
		return model.ThemeDefault
	}
	return theme
}

// Palette resolves the chat's theme to a highlighting style name.
func (t *ThemeUsecase) Palette(ctx context.Context, chatID int64) string {
	return t.Theme(ctx, chatID).Palette()
}

// SetTheme stores choice for the chat. Setting the same value twice is a
// no-op with the same result.
func (t *ThemeUsecase) SetTheme(ctx context.Context, chatID int64, choice string) (model.Theme, error) {
	theme, ok := model.ParseTheme(choice)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, choice)
	}
	if err := t.ThemeStorage.SetTheme(ctx, chatKey(chatID), theme); err != nil {
		return "", fmt.Errorf("failed to set chat theme: %w", err)
	}
	return theme, nil
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
