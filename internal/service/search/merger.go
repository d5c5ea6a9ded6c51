package search

import "github.com/warrenhq/warren/internal/core"

// maxSecondaryPerKind caps what the fallback may add per evidence kind, so
// keyword noise cannot swamp vector-ranked results.
const maxSecondaryPerKind = 2

// primaryDisclaimerQuorum is the primary disclaimer count above which
// fallback disclaimers are ignored outright.
const primaryDisclaimerQuorum = 2

// Merger combines a primary bundle with fallback results. Primary items are
// authoritative: they keep their positions, and secondary items only fill
// gaps. Merging is deterministic.
type Merger struct{}

func NewMerger() *Merger {
	return &Merger{}
}

func (m *Merger) Merge(primary, secondary core.ContextBundle) core.ContextBundle {
	merged := primary

	seen := make(map[string]bool, len(primary.Examples)+len(primary.Disclaimers))
	for _, item := range primary.Examples {
		seen[item.ID] = true
	}
	for _, item := range primary.Disclaimers {
		seen[item.ID] = true
	}

	addedExamples := 0
	for _, item := range secondary.Examples {
		if addedExamples == maxSecondaryPerKind {
			break
		}
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		merged.Examples = append(merged.Examples, item)
		addedExamples++
	}

	addedDisclaimers := 0
	if len(primary.Disclaimers) < primaryDisclaimerQuorum {
		for _, item := range secondary.Disclaimers {
			if addedDisclaimers == maxSecondaryPerKind {
				break
			}
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			merged.Disclaimers = append(merged.Disclaimers, item)
			addedDisclaimers++
		}
	}

	merged.Strategy = mergedStrategy(primary, secondary, addedExamples+addedDisclaimers)

	return merged
}

// mergedStrategy reflects which paths actually contributed items. When
// neither did, the strategy names the last path attempted.
func mergedStrategy(primary, secondary core.ContextBundle, addedFromSecondary int) core.SearchStrategy {
	switch {
	case !primary.Empty() && addedFromSecondary > 0:
		return core.StrategyHybrid
	case addedFromSecondary > 0:
		return secondary.Strategy
	case !primary.Empty():
		return primary.Strategy
	default:
		return secondary.Strategy
	}
}
