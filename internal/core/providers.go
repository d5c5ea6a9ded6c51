package core

import "context"

// GenerationParams tune a single backend call. Zero values defer to the
// backend's configured defaults.
type GenerationParams struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

type GenerationBackend interface {
	Generate(ctx context.Context, system, prompt string, params GenerationParams) (string, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
