package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warrenhq/warren/pkg/log"
)

type SearchConfig struct {
	// Minimum cosine similarity for a vector hit to count as evidence.
	ScoreThreshold float64 `env:"WARREN_SEARCH_SCORE_THRESHOLD" envDefault:"0.65"`

	ExampleLimit    int `env:"WARREN_SEARCH_EXAMPLE_LIMIT" envDefault:"3"`
	DisclaimerLimit int `env:"WARREN_SEARCH_DISCLAIMER_LIMIT" envDefault:"3"`

	EmbeddingModel string        `env:"WARREN_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	EmbedCacheTTL  time.Duration `env:"WARREN_EMBED_CACHE_TTL" envDefault:"15m"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c := &SearchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse search config")
	}
	return c
}
