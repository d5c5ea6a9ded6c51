package search

import (
	"context"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

// Orchestrator runs primary retrieval, assesses the evidence, and falls back
// to the secondary strategy when the verdict is insufficient.
type Orchestrator struct {
	primary  Strategy
	fallback Strategy
	assessor *Assessor
	merger   *Merger
}

func NewOrchestrator(primary, fallback Strategy, assessor *Assessor, merger *Merger) *Orchestrator {
	return &Orchestrator{
		primary:  primary,
		fallback: fallback,
		assessor: assessor,
		merger:   merger,
	}
}

// Retrieve never fails: any degradation along the way is visible on the
// returned bundle, not as an error.
func (o *Orchestrator) Retrieve(ctx context.Context, q Query) core.ContextBundle {
	logger := log.FromCtx(ctx)

	bundle := o.primary.Bundle(ctx, q)
	verdict := o.assessor.Assess(bundle)
	if verdict.Sufficient {
		logger.Debug().
			Int("examples", bundle.ExampleCount()).
			Int("disclaimers", bundle.DisclaimerCount()).
			Float64("score", verdict.Score).
			Msg("primary evidence sufficient")
		return bundle
	}

	logger.Info().
		Str("reason", string(verdict.Reason)).
		Float64("score", verdict.Score).
		Msg("primary evidence insufficient, running keyword fallback")

	secondary := o.fallback.Bundle(ctx, q)
	merged := o.merger.Merge(bundle, secondary)
	merged.FallbackUsed = true
	merged.FallbackReason = string(verdict.Reason)

	return merged
}
