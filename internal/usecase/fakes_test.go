package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
	in_memory "github.com/iamvkosarev/codeninja-telegram-bot/internal/storage/in-memory"
)

var (
	errFormattingRejected = &api.Error{Code: 400, Message: "Bad Request: can't parse entities"}
	errTransport          = errors.New("connection reset by peer")
)

type fakeBot struct {
	mu           sync.Mutex
	sent         []api.Chattable
	requested    []api.Chattable
	attempts     int
	sendErr      func(c api.Chattable) error
	memberStatus string
	memberErr    error
	memberCalls  int
	nextID       int
}

func (b *fakeBot) Send(c api.Chattable) (api.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempts++
	if b.sendErr != nil {
		if err := b.sendErr(c); err != nil {
			return api.Message{}, err
		}
	}
	b.sent = append(b.sent, c)
	b.nextID++
	return api.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c api.Chattable) (*api.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requested = append(b.requested, c)
	return &api.APIResponse{Ok: true}, nil
}

func (b *fakeBot) MakeRequest(endpoint string, _ api.Params) (*api.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.memberCalls++
	if endpoint != methodGetChatMember {
		return nil, errors.New("unexpected endpoint " + endpoint)
	}
	if b.memberErr != nil {
		return nil, b.memberErr
	}
	result, err := json.Marshal(map[string]any{"status": b.memberStatus})
	if err != nil {
		return nil, err
	}
	return &api.APIResponse{Ok: true, Result: result}, nil
}

func (b *fakeBot) messages() []api.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []api.MessageConfig
	for _, c := range b.sent {
		if msg, ok := c.(api.MessageConfig); ok {
			out = append(out, msg)
		}
	}
	return out
}

func (b *fakeBot) photos() []api.PhotoConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []api.PhotoConfig
	for _, c := range b.sent {
		if photo, ok := c.(api.PhotoConfig); ok {
			out = append(out, photo)
		}
	}
	return out
}

func (b *fakeBot) documents() []api.DocumentConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []api.DocumentConfig
	for _, c := range b.sent {
		if doc, ok := c.(api.DocumentConfig); ok {
			out = append(out, doc)
		}
	}
	return out
}

func (b *fakeBot) texts() []string {
	msgs := b.messages()
	out := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, msg.Text)
	}
	return out
}

func rejectFormatted(c api.Chattable) error {
	if msg, ok := c.(api.MessageConfig); ok && msg.ParseMode != "" {
		return errFormattingRejected
	}
	return nil
}

func rejectPhotos(c api.Chattable) error {
	if _, ok := c.(api.PhotoConfig); ok {
		return errTransport
	}
	return nil
}

type fakeRenderer struct {
	mu        sync.Mutex
	available bool
	err       error
	themes    []string
	texts     []string
}

func (r *fakeRenderer) Available() bool {
	return r.available
}

func (r *fakeRenderer) Render(text string, theme string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes = append(r.themes, theme)
	r.texts = append(r.texts, text)
	if r.err != nil {
		return nil, r.err
	}
	return []byte("\x89PNG fake"), nil
}

func (r *fakeRenderer) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts)
}

type fakeCompletionClient struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []openai.ChatCompletionRequest
}

func (c *fakeCompletionClient) CreateChatCompletion(
	_ context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: c.content}},
		},
	}, nil
}

func (c *fakeCompletionClient) lastPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return ""
	}
	msgs := c.requests[len(c.requests)-1].Messages
	return msgs[len(msgs)-1].Content
}

func testBranding() Branding {
	return NewBranding(config.Branding{
		BotName:        "Codeninja AI",
		OwnerContact:   "@dev",
		OwnerInstagram: "insta",
		OwnerYouTube:   "tube",
	}, "@channel")
}

func newTestThemes() *ThemeUsecase {
	return NewThemeUsecase(ThemeUsecaseDeps{
		ThemeStorage: in_memory.NewThemeStorage(),
		Logger:       zerolog.Nop(),
	})
}

var testTarget = model.Target{ChatID: 42}
