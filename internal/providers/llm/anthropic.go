package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	defaultMaxTokens = 2048
)

// Anthropic generates text through the messages API.
type Anthropic struct {
	baseProvider
	cfg     *config.LLMConfig
	limiter *rate.Limiter
}

func NewAnthropic(cfg *config.LLMConfig) (*Anthropic, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	return &Anthropic{
		baseProvider: newBaseProvider(anthropicBaseURL, cfg.AnthropicAPIKey, cfg.RequestTimeout),
		cfg:          cfg,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	}, nil
}

func (p *Anthropic) Generate(ctx context.Context, system, prompt string, params core.GenerationParams) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	model := params.Model
	if model == "" {
		model = p.cfg.Model
	}
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	payload := map[string]any{
		"model":      model,
		"max_tokens": maxTokens,
		"system":     system,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	if params.Temperature > 0 {
		payload["temperature"] = params.Temperature
	}

	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := p.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	var text string
	for _, c := range result.Content {
		if c.Type == "text" {
			text += c.Text
		}
	}
	return text, nil
}

var _ core.GenerationBackend = (*Anthropic)(nil)
