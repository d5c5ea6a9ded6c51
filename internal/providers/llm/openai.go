package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
)

// OpenAI generates text through the chat completions API. One token bucket
// is shared by every call against this backend, so concurrent tier attempts
// stay inside the account limit. Backends make a single attempt; failure
// handling belongs to the tier cascade above them.
type OpenAI struct {
	client  *openai.Client
	cfg     *config.LLMConfig
	limiter *rate.Limiter
}

func NewOpenAI(cfg *config.LLMConfig) (*OpenAI, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAI{
		client:  openai.NewClientWithConfig(clientConfig),
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	}, nil
}

func (p *OpenAI) Generate(ctx context.Context, system, prompt string, params core.GenerationParams) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()

	model := params.Model
	if model == "" {
		model = p.cfg.Model
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

var _ core.GenerationBackend = (*OpenAI)(nil)
