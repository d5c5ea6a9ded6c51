package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/internal/service/search"
	"github.com/warrenhq/warren/pkg/log"
)

type EvidenceRetriever interface {
	Retrieve(ctx context.Context, q search.Query) core.ContextBundle
}

type SessionReader interface {
	SessionContext(ctx context.Context, sessionID string, includeHistory bool) core.SessionContext
}

type TurnRecorder interface {
	Record(ctx context.Context, turn core.Turn)
}

// Orchestrator is the single entry point: validate, retrieve, assess, pick a
// tier, generate with descend-only fallback, and as a last resort run the
// emergency path.
type Orchestrator struct {
	retriever EvidenceRetriever
	sessions  SessionReader
	recorder  TurnRecorder
	assessor  *search.Assessor
	selector  *Selector
	emergency *Emergency
}

func NewOrchestrator(
	retriever EvidenceRetriever,
	sessions SessionReader,
	recorder TurnRecorder,
	selector *Selector,
	emergency *Emergency,
) *Orchestrator {
	return &Orchestrator{
		retriever: retriever,
		sessions:  sessions,
		recorder:  recorder,
		assessor:  search.NewAssessor(),
		selector:  selector,
		emergency: emergency,
	}
}

// GenerateContent produces compliance-aware marketing text for one request.
// Degraded paths are visible on the result metadata; the only errors are a
// ValidationError before any collaborator runs, or an EmergencyFallbackError
// when every tier and the emergency path all failed.
func (o *Orchestrator) GenerateContent(ctx context.Context, req core.GenerationRequest) (core.GenerationResult, error) {
	logger := log.FromCtx(ctx)

	if err := validate(req); err != nil {
		return core.GenerationResult{}, err
	}

	logger.Info().
		Str("category", req.Category).
		Str("type", string(req.Type)).
		Bool("session", req.SessionID != "").
		Msg("generating content")

	bundle, session := o.gather(ctx, req)
	verdict := o.assessor.Assess(bundle)

	cascade := o.selector.Select(Selection{Bundle: bundle, Verdict: verdict})
	in := Input{Request: req, Bundle: bundle, Session: session, Verdict: verdict}

	text, tier, cascadeErr := o.runCascade(ctx, cascade, in)

	result := core.GenerationResult{
		ID:              uuid.NewString(),
		Category:        req.Category,
		SearchStrategy:  bundle.Strategy,
		FallbackUsed:    bundle.FallbackUsed,
		FallbackReason:  bundle.FallbackReason,
		ExampleCount:    bundle.ExampleCount(),
		DisclaimerCount: bundle.DisclaimerCount(),
		QualityScore:    verdict.Score,
		SessionID:       req.SessionID,
		DocumentTitles:  session.DocumentTitles(),
		CreatedAt:       time.Now().UTC(),
	}

	if cascadeErr != nil {
		logger.Warn().Err(cascadeErr).Msg("all generation tiers failed")

		emergencyText, err := o.emergency.Generate(ctx, req)
		if err != nil {
			return core.GenerationResult{}, &core.EmergencyFallbackError{Original: cascadeErr, Emergency: err}
		}

		result.Text = emergencyText
		result.Tier = core.TierLegacy
		result.EmergencyFallback = true
		result.EmergencyCause = cascadeErr.Error()
	} else {
		result.Text = text
		result.Tier = tier
	}

	o.record(ctx, req, result)
	return result, nil
}

func validate(req core.GenerationRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return &core.ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	if strings.TrimSpace(req.Category) == "" {
		return &core.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	return nil
}

// gather runs evidence retrieval and session loading concurrently. Both
// degrade internally and never fail.
func (o *Orchestrator) gather(ctx context.Context, req core.GenerationRequest) (core.ContextBundle, core.SessionContext) {
	var (
		bundle  core.ContextBundle
		session core.SessionContext
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bundle = o.retriever.Retrieve(ctx, search.Query{
			Text:     req.Prompt,
			Category: req.Category,
			Audience: req.Audience,
		})
	}()
	go func() {
		defer wg.Done()
		session = o.sessions.SessionContext(ctx, req.SessionID, true)
	}()
	wg.Wait()

	return bundle, session
}

// runCascade walks the tiers in order, one sequential attempt each. The
// returned error is the last tier's failure.
func (o *Orchestrator) runCascade(ctx context.Context, cascade []Generator, in Input) (string, core.Tier, error) {
	logger := log.FromCtx(ctx)

	if len(cascade) == 0 {
		return "", "", fmt.Errorf("no generation tier accepted the request")
	}

	var lastErr error
	for _, g := range cascade {
		text, err := g.Execute(ctx, in)
		if err == nil && strings.TrimSpace(text) != "" {
			logger.Info().Str("tier", string(g.Tier())).Msg("generation complete")
			return text, g.Tier(), nil
		}
		if err == nil {
			err = fmt.Errorf("backend returned empty completion")
		}

		lastErr = &core.GenerationError{Tier: g.Tier(), Err: err}
		logger.Warn().Err(err).Str("tier", string(g.Tier())).Msg("generation tier failed")
	}

	return "", "", lastErr
}

// record enqueues the exchange for background persistence. Fire and forget:
// a full queue or missing session drops the turn without affecting the
// result.
func (o *Orchestrator) record(ctx context.Context, req core.GenerationRequest, result core.GenerationResult) {
	if o.recorder == nil || req.SessionID == "" {
		return
	}
	o.recorder.Record(ctx, core.Turn{
		SessionID: req.SessionID,
		Prompt:    req.Prompt,
		Response:  result.Text,
		Tier:      result.Tier,
	})
}
