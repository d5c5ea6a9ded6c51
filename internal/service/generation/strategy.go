package generation

import (
	"context"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
)

// Quality score floors for tier admission.
const (
	advancedScoreFloor = 0.7
	standardScoreFloor = 0.4
)

// Selection is the evidence a tier choice is made on: the retrieved bundle
// and the assessor's verdict over it.
type Selection struct {
	Bundle  core.ContextBundle
	Verdict core.QualityVerdict
}

// Input carries everything a tier may draw on to produce text.
type Input struct {
	Request core.GenerationRequest
	Bundle  core.ContextBundle
	Session core.SessionContext
	Verdict core.QualityVerdict
}

// Generator is one generation tier. The set is closed: advanced, standard,
// legacy, in descending order of context richness. Tiers differ in which
// budget categories they pack and in model parameters, not in interface.
type Generator interface {
	Tier() core.Tier
	CanHandle(sel Selection) bool
	Execute(ctx context.Context, in Input) (string, error)
}

// Selector walks the cascade richest-first and picks the first tier whose
// requirements the selection meets.
type Selector struct {
	generators []Generator
}

// NewSelector expects generators ordered richest first, ending with one that
// accepts any selection.
func NewSelector(generators ...Generator) *Selector {
	return &Selector{generators: generators}
}

// Select returns the chosen tier followed by every tier below it, so the
// caller's fallback walk can only descend.
func (s *Selector) Select(sel Selection) []Generator {
	for i, g := range s.generators {
		if g.CanHandle(sel) {
			return s.generators[i:]
		}
	}
	return nil
}

// NewCascade builds the closed tier set, richest first. Advanced and standard
// run on the primary model; legacy runs on the cheaper fallback model with a
// tighter output cap.
func NewCascade(backend core.GenerationBackend, prompts *PromptBuilder, cfg *config.LLMConfig) []Generator {
	return []Generator{
		&advancedTier{
			backend: backend,
			prompts: prompts,
			params:  core.GenerationParams{Model: cfg.Model, MaxTokens: 1500, Temperature: 0.7},
		},
		&standardTier{
			backend: backend,
			prompts: prompts,
			params:  core.GenerationParams{Model: cfg.Model, MaxTokens: 1100, Temperature: 0.6},
		},
		&legacyTier{
			backend: backend,
			prompts: prompts,
			params:  core.GenerationParams{Model: cfg.FallbackModel, MaxTokens: 800, Temperature: 0.5},
		},
	}
}

// advancedTier packs the full context: evidence, session history, documents
// and the draft. It requires strong gated evidence on both kinds.
type advancedTier struct {
	backend core.GenerationBackend
	prompts *PromptBuilder
	params  core.GenerationParams
}

func (t *advancedTier) Tier() core.Tier { return core.TierAdvanced }

func (t *advancedTier) CanHandle(sel Selection) bool {
	return sel.Bundle.SearchAvailable &&
		sel.Verdict.Score > advancedScoreFloor &&
		sel.Bundle.ExampleCount() > 0 &&
		sel.Bundle.DisclaimerCount() > 0
}

func (t *advancedTier) Execute(ctx context.Context, in Input) (string, error) {
	prompt, err := t.prompts.Build(ctx, in, advancedCategories)
	if err != nil {
		return "", err
	}
	return t.backend.Generate(ctx, systemPrompt, prompt, t.params)
}

// standardTier packs retrieved evidence and the draft but drops session
// history and documents. In practice it serves requests where disclaimers
// surfaced without usable examples.
type standardTier struct {
	backend core.GenerationBackend
	prompts *PromptBuilder
	params  core.GenerationParams
}

func (t *standardTier) Tier() core.Tier { return core.TierStandard }

func (t *standardTier) CanHandle(sel Selection) bool {
	return sel.Bundle.SearchAvailable &&
		sel.Verdict.Score > standardScoreFloor &&
		!sel.Bundle.Empty()
}

func (t *standardTier) Execute(ctx context.Context, in Input) (string, error) {
	prompt, err := t.prompts.Build(ctx, in, standardCategories)
	if err != nil {
		return "", err
	}
	return t.backend.Generate(ctx, systemPrompt, prompt, t.params)
}

// legacyTier uses no retrieved context at all: the prompt carries the request
// plus fixed compliance guidance. It accepts every selection and terminates
// the cascade.
type legacyTier struct {
	backend core.GenerationBackend
	prompts *PromptBuilder
	params  core.GenerationParams
}

func (t *legacyTier) Tier() core.Tier { return core.TierLegacy }

func (t *legacyTier) CanHandle(Selection) bool { return true }

func (t *legacyTier) Execute(ctx context.Context, in Input) (string, error) {
	prompt, err := t.prompts.Build(ctx, in, legacyCategories)
	if err != nil {
		return "", err
	}
	return t.backend.Generate(ctx, systemPrompt, prompt, t.params)
}

var (
	_ Generator = (*advancedTier)(nil)
	_ Generator = (*standardTier)(nil)
	_ Generator = (*legacyTier)(nil)
)
