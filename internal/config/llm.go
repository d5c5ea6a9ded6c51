package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warrenhq/warren/pkg/log"
)

type LLMConfig struct {
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"WARREN_OPENAI_BASE_URL"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	Model         string `env:"WARREN_MODEL" envDefault:"gpt-4o"`
	FallbackModel string `env:"WARREN_FALLBACK_MODEL" envDefault:"gpt-4o-mini"`

	RequestTimeout time.Duration `env:"WARREN_LLM_TIMEOUT" envDefault:"45s"`

	// Token bucket shared by all calls against one backend.
	RateLimitPerSecond float64 `env:"WARREN_LLM_RATE_LIMIT" envDefault:"5"`
	RateLimitBurst     int     `env:"WARREN_LLM_RATE_BURST" envDefault:"10"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse llm config")
	}
	return c
}
