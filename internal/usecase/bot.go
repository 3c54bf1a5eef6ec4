package usecase

import (
	"errors"
	"strings"

	api "github.com/OvyFlash/telegram-bot-api"
)

// Bot is the part of *api.BotAPI the usecases talk to.
type Bot interface {
	Send(c api.Chattable) (api.Message, error)
	Request(c api.Chattable) (*api.APIResponse, error)
	MakeRequest(endpoint string, params api.Params) (*api.APIResponse, error)
}

// UpdatesSource is the long polling side of *api.BotAPI.
type UpdatesSource interface {
	GetUpdatesChan(config api.UpdateConfig) api.UpdatesChannel
	StopReceivingUpdates()
}

const redactedToken = "<redacted-token>"

type redactingBot struct {
	Bot
	token string
}

// NewRedactingBot hides the bot token in transport errors, which embed the
// request URL. API errors pass through untouched so they can still be
// classified.
func NewRedactingBot(bot Bot, token string) Bot {
	return &redactingBot{Bot: bot, token: token}
}

func (b *redactingBot) Send(c api.Chattable) (api.Message, error) {
	msg, err := b.Bot.Send(c)
	return msg, b.redact(err)
}

func (b *redactingBot) Request(c api.Chattable) (*api.APIResponse, error) {
	resp, err := b.Bot.Request(c)
	return resp, b.redact(err)
}

func (b *redactingBot) MakeRequest(endpoint string, params api.Params) (*api.APIResponse, error) {
	resp, err := b.Bot.MakeRequest(endpoint, params)
	return resp, b.redact(err)
}

func (b *redactingBot) redact(err error) error {
	return RedactToken(err, b.token)
}

// RedactToken replaces token in err's text. API errors are returned as is.
func RedactToken(err error, token string) error {
	if err == nil || strings.TrimSpace(token) == "" {
		return err
	}
	if _, ok := asAPIError(err); ok {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, token) {
		return err
	}
	return errors.New(strings.ReplaceAll(msg, token, redactedToken))
}

func asAPIError(err error) (*api.Error, bool) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr, true
	}
	return nil, false
}
