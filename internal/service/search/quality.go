package search

import "github.com/warrenhq/warren/internal/core"

// Quality scoring weights. Example and disclaimer weights are per-item
// contributions; the base acknowledges that gated evidence of any size beats
// none. Kept in lockstep with the compliance team's review thresholds.
const (
	exampleWeight    = 0.4
	disclaimerWeight = 0.3
	scoreBase        = 0.3
)

// Scores attached to the short-circuit verdicts.
const (
	scoreUnavailable   = 0.0
	scoreNoContent     = 0.1
	scoreNoDisclaimers = 0.4
)

// Assessor judges whether a bundle is strong enough to support
// example-driven generation. Disclaimer presence is a hard gate: marketing
// text for advisors cannot ship without compliance language.
type Assessor struct{}

func NewAssessor() *Assessor {
	return &Assessor{}
}

// Assess applies the sufficiency rules in order: search availability, any
// content at all, disclaimer presence, then the weighted score capped at 1.
func (a *Assessor) Assess(bundle core.ContextBundle) core.QualityVerdict {
	if !bundle.SearchAvailable {
		return core.QualityVerdict{Score: scoreUnavailable, Reason: core.QualityUnavailable}
	}

	examples := bundle.ExampleCount()
	disclaimers := bundle.DisclaimerCount()

	if examples == 0 && disclaimers == 0 {
		return core.QualityVerdict{Score: scoreNoContent, Reason: core.QualityNoContent}
	}
	if disclaimers == 0 {
		return core.QualityVerdict{Score: scoreNoDisclaimers, Reason: core.QualityNoDisclaimers}
	}

	score := float64(examples)*exampleWeight + float64(disclaimers)*disclaimerWeight + scoreBase
	if score > 1.0 {
		score = 1.0
	}

	return core.QualityVerdict{Sufficient: true, Score: score, Reason: core.QualitySufficient}
}
