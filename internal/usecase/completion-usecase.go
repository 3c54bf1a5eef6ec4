package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/iamvkosarev/codeninja-telegram-bot/config"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/metrics"
	"github.com/iamvkosarev/codeninja-telegram-bot/internal/model"
)

var (
	ErrEmptyCompletion = errors.New("completion has no content")
)

const (
	OpenAIRoleSystem = openai.ChatMessageRoleSystem
	OpenAIRoleUser   = openai.ChatMessageRoleUser
)

type ChatCompletionClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type PromptLimiter interface {
	Limit(text string) (string, bool)
	CountTokens(messages []openai.ChatCompletionMessage) int
}

type CompletionUsecaseDeps struct {
	Client  ChatCompletionClient
	Limiter PromptLimiter
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

type CompletionUsecase struct {
	CompletionUsecaseDeps
	cfg          config.Completion
	systemPrompt string
}

func NewCompletionUsecase(deps CompletionUsecaseDeps, cfg config.Completion, systemPrompt string) *CompletionUsecase {
	return &CompletionUsecase{
		CompletionUsecaseDeps: deps,
		cfg:                   cfg,
		systemPrompt:          systemPrompt,
	}
}

// Complete sends prompt with the system instructions. Failures come back in
// the result, never as a separate error.
func (c *CompletionUsecase) Complete(ctx context.Context, prompt string) model.Completion {
	if c.Limiter != nil {
		if limited, cut := c.Limiter.Limit(prompt); cut {
			c.Logger.Warn().
				Int("max_prompt_tokens", c.cfg.MaxPromptTokens).
				Int("prompt_len", len(prompt)).
				Msg("prompt trimmed due to token limit")
			prompt = limited
		}
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: OpenAIRoleSystem, Content: c.systemPrompt},
			{Role: OpenAIRoleUser, Content: prompt},
		},
	}

	if c.Limiter != nil {
		c.Logger.Debug().Int("estimated_prompt_tokens", c.Limiter.CountTokens(req.Messages)).Msg("sending completion request")
	}

	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err == nil {
		err = checkCompletion(resp)
	}
	if err != nil {
		c.count(metrics.CompletionFailed)
		c.Logger.Error().Err(err).Str("model", c.cfg.Model).Msg("failed to get completion")
		return model.CompletionFailure(err)
	}

	c.count(metrics.CompletionOK)
	c.Logger.Debug().
		Str("model", c.cfg.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("completion received")
	return model.CompletionText(resp.Choices[0].Message.Content)
}

func checkCompletion(resp openai.ChatCompletionResponse) error {
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return ErrEmptyCompletion
	}
	return nil
}

func (c *CompletionUsecase) count(result string) {
	if c.Metrics != nil {
		c.Metrics.Completions.WithLabelValues(result).Inc()
	}
}
