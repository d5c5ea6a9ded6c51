package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

const emergencySystem = `You are a conservative writing assistant for licensed financial advisors.
Keep the draft short, factual and compliant.
Include a general risk disclosure and never promise returns or give individualized advice.`

// Emergency is the last resort after every tier has failed. It skips
// retrieval and budget assembly entirely and sends a minimal prompt to its
// own backend, which deployments usually point at a different vendor than the
// cascade uses.
type Emergency struct {
	backend core.GenerationBackend
	params  core.GenerationParams
}

func NewEmergency(backend core.GenerationBackend, cfg *config.LLMConfig) *Emergency {
	return &Emergency{
		backend: backend,
		params:  core.GenerationParams{Model: cfg.FallbackModel, MaxTokens: 600, Temperature: 0.4},
	}
}

func (e *Emergency) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	log.FromCtx(ctx).Info().Str("category", req.Category).Msg("running emergency generation")

	var b strings.Builder
	fmt.Fprintf(&b, "Write short %s marketing content for a financial advisor.\n", req.Category)
	if req.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", req.Audience)
	}
	b.WriteString("Request: ")
	b.WriteString(req.Prompt)

	text, err := e.backend.Generate(ctx, emergencySystem, b.String(), e.params)
	if err != nil {
		return "", fmt.Errorf("emergency generation failed: %w", err)
	}
	return text, nil
}
