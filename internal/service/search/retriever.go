package search

import (
	"context"
	"strings"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

// Query is one evidence retrieval request.
type Query struct {
	Text     string
	Category string
	Audience string
}

// queryText folds the audience into the searched text so audience-specific
// examples rank higher.
func (q Query) queryText() string {
	if q.Audience == "" {
		return q.Text
	}
	return q.Text + " for " + q.Audience
}

// Strategy is one way of gathering evidence. The set is closed: vector
// retrieval and keyword retrieval. Strategies degrade to partial or empty
// bundles instead of failing the request.
type Strategy interface {
	Name() core.SearchStrategy
	Bundle(ctx context.Context, q Query) core.ContextBundle
}

// VectorRetriever searches by embedding similarity. It reports the index
// unavailable when readiness fails or the query cannot be embedded.
type VectorRetriever struct {
	cfg      *config.SearchConfig
	store    core.VectorEvidenceStore
	embedder core.Embedder
}

func NewVectorRetriever(cfg *config.SearchConfig, store core.VectorEvidenceStore, embedder core.Embedder) *VectorRetriever {
	return &VectorRetriever{
		cfg:      cfg,
		store:    store,
		embedder: embedder,
	}
}

func (r *VectorRetriever) Name() core.SearchStrategy {
	return core.StrategyVector
}

func (r *VectorRetriever) Bundle(ctx context.Context, q Query) core.ContextBundle {
	logger := log.FromCtx(ctx)
	bundle := core.ContextBundle{Strategy: core.StrategyVector}

	readiness := r.store.Readiness(ctx)
	if !readiness.Ready {
		bundle.Unavailability = readiness.Reason
		logger.Warn().Str("reason", readiness.Reason).Msg("vector search unavailable")
		return bundle
	}

	vector, err := r.embedder.Embed(ctx, q.queryText())
	if err != nil {
		bundle.Unavailability = "query embedding failed"
		logger.Warn().Err(err).Msg("failed to embed search query")
		return bundle
	}

	bundle.SearchAvailable = true

	examples, err := r.store.Search(ctx, vector, core.KindExample, q.Category, r.cfg.ScoreThreshold, r.cfg.ExampleLimit)
	if err != nil {
		logger.Warn().Err(err).Msg("vector example search failed")
	} else {
		bundle.Examples = examples
	}

	disclaimers, err := r.store.Search(ctx, vector, core.KindDisclaimer, q.Category, r.cfg.ScoreThreshold, r.cfg.DisclaimerLimit)
	if err != nil {
		logger.Warn().Err(err).Msg("vector disclaimer search failed")
	} else {
		bundle.Disclaimers = disclaimers
	}

	return bundle
}

// KeywordRetriever is the text-search fallback. Disclaimers come from the
// category lookup rather than term matching, so a category's required
// disclaimers surface even when the prompt shares no words with them.
type KeywordRetriever struct {
	cfg   *config.SearchConfig
	store core.KeywordEvidenceStore
}

func NewKeywordRetriever(cfg *config.SearchConfig, store core.KeywordEvidenceStore) *KeywordRetriever {
	return &KeywordRetriever{
		cfg:   cfg,
		store: store,
	}
}

func (r *KeywordRetriever) Name() core.SearchStrategy {
	return core.StrategyText
}

func (r *KeywordRetriever) Bundle(ctx context.Context, q Query) core.ContextBundle {
	logger := log.FromCtx(ctx)
	bundle := core.ContextBundle{Strategy: core.StrategyText, SearchAvailable: true}

	terms := strings.TrimSpace(q.queryText())
	if terms != "" {
		examples, err := r.store.Search(ctx, terms, core.KindExample, q.Category, r.cfg.ExampleLimit)
		if err != nil {
			logger.Warn().Err(err).Msg("keyword example search failed")
		} else {
			bundle.Examples = examples
		}
	}

	disclaimers, err := r.store.DisclaimersFor(ctx, q.Category)
	if err != nil {
		logger.Warn().Err(err).Msg("keyword disclaimer lookup failed")
	} else {
		if len(disclaimers) > r.cfg.DisclaimerLimit {
			disclaimers = disclaimers[:r.cfg.DisclaimerLimit]
		}
		bundle.Disclaimers = disclaimers
	}

	return bundle
}

var (
	_ Strategy = (*VectorRetriever)(nil)
	_ Strategy = (*KeywordRetriever)(nil)
)
