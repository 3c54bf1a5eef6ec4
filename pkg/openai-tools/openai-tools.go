package openai_tools

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

// FallbackEncoding is used for models tiktoken does not know, such as the
// open-weight models served behind OpenAI-compatible APIs.
const FallbackEncoding = "cl100k_base"

func encodingFor(model string) (*tiktoken.Tiktoken, error) {
	if enc, err := tiktoken.EncodingForModel(model); err == nil {
		return enc, nil
	}
	enc, err := tiktoken.GetEncoding(FallbackEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to get encoding %s: %w", FallbackEncoding, err)
	}
	return enc, nil
}

// countTokens estimates the prompt size of messages the way OpenAI documents
// it for chat models.
func countTokens(enc *tiktoken.Tiktoken, messages []openai.ChatCompletionMessage) int {
	const tokensPerMessage = 3
	count := 0
	for _, message := range messages {
		count += tokensPerMessage
		count += len(enc.Encode(message.Content, nil, nil))
		count += len(enc.Encode(message.Role, nil, nil))
		if message.Name != "" {
			count += len(enc.Encode(message.Name, nil, nil)) + 1
		}
	}
	// every reply is primed with <|start|>assistant<|message|>
	return count + 3
}

type PromptLimiter struct {
	enc       *tiktoken.Tiktoken
	maxTokens int
}

// NewPromptLimiter loads the encoding for model. A non-positive maxTokens
// disables limiting and skips loading.
func NewPromptLimiter(model string, maxTokens int) (*PromptLimiter, error) {
	if maxTokens <= 0 {
		return &PromptLimiter{}, nil
	}
	enc, err := encodingFor(model)
	if err != nil {
		return &PromptLimiter{}, err
	}
	return &PromptLimiter{enc: enc, maxTokens: maxTokens}, nil
}

// Limit cuts text down to the token budget. The second result reports
// whether anything was cut.
func (l *PromptLimiter) Limit(text string) (string, bool) {
	if l == nil || l.enc == nil {
		return text, false
	}
	tokens := l.enc.Encode(text, nil, nil)
	if len(tokens) <= l.maxTokens {
		return text, false
	}
	return l.enc.Decode(tokens[:l.maxTokens]), true
}

// CountTokens estimates the request size of messages. It returns 0 when the
// limiter is disabled.
func (l *PromptLimiter) CountTokens(messages []openai.ChatCompletionMessage) int {
	if l == nil || l.enc == nil {
		return 0
	}
	return countTokens(l.enc, messages)
}
