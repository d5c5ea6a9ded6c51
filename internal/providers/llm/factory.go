package llm

import (
	"context"
	"fmt"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

// NewBackend creates the generation backend named by provider.
func NewBackend(ctx context.Context, provider string, cfg *config.LLMConfig) (core.GenerationBackend, error) {
	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Str("model", cfg.Model).
		Msg("starting generation backend")

	switch provider {
	case "openai":
		return NewOpenAI(cfg)
	case "anthropic":
		return NewAnthropic(cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
