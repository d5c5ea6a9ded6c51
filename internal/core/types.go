package core

import "time"

const (
	WarrenName      = "Warren"
	WarrenUserAgent = "Warren-Core/0.1"
	WarrenVersion   = "0.1.0"
)

// Evidence kinds held by the evidence stores.
const (
	KindExample    = "example"
	KindDisclaimer = "disclaimer"
)

// SearchStrategy records which retrieval paths contributed to a bundle.
type SearchStrategy string

const (
	StrategyVector SearchStrategy = "vector"
	StrategyText   SearchStrategy = "text"
	StrategyHybrid SearchStrategy = "hybrid"
)

// RequestType selects the token budget partition for a request.
type RequestType string

const (
	RequestCreation     RequestType = "creation"
	RequestRefinement   RequestType = "refinement"
	RequestAnalysis     RequestType = "analysis"
	RequestConversation RequestType = "conversation"
)

// Tier identifies a generation approach. Tiers are ordered; fallback only
// descends.
type Tier string

const (
	TierAdvanced Tier = "advanced"
	TierStandard Tier = "standard"
	TierLegacy   Tier = "legacy"
)

// EvidenceItem is one retrieved unit of supporting material: an approved
// content example or a regulatory disclaimer. Items are immutable once
// retrieved and live for a single request.
type EvidenceItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	Category string  `json:"category,omitempty"`
	Kind     string  `json:"kind"`
	Score    float64 `json:"score"`
}

// ContextBundle carries the evidence gathered for one generation request.
// The search orchestrator assembles it; everything downstream treats it as
// read-only.
type ContextBundle struct {
	Examples        []EvidenceItem `json:"examples"`
	Disclaimers     []EvidenceItem `json:"disclaimers"`
	Strategy        SearchStrategy `json:"strategy"`
	SearchAvailable bool           `json:"search_available"`
	Unavailability  string         `json:"unavailability,omitempty"`
	FallbackUsed    bool           `json:"fallback_used"`
	FallbackReason  string         `json:"fallback_reason,omitempty"`
}

func (b ContextBundle) ExampleCount() int    { return len(b.Examples) }
func (b ContextBundle) DisclaimerCount() int { return len(b.Disclaimers) }

func (b ContextBundle) Empty() bool {
	return len(b.Examples) == 0 && len(b.Disclaimers) == 0
}

type QualityReason string

const (
	QualityUnavailable   QualityReason = "unavailable"
	QualityNoContent     QualityReason = "no_content"
	QualityNoDisclaimers QualityReason = "no_disclaimers"
	QualitySufficient    QualityReason = "sufficient"
)

// QualityVerdict is the assessor's judgement over a bundle. It is derived,
// advisory, and never persisted.
type QualityVerdict struct {
	Sufficient bool          `json:"sufficient"`
	Score      float64       `json:"score"`
	Reason     QualityReason `json:"reason"`
}

// SessionDocument is the summary view of an uploaded document attached to an
// advisor session. Only processed documents with a non-empty summary are
// surfaced.
type SessionDocument struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	WordCount int    `json:"word_count"`
}

// SessionContext is the conversational state retrieved for a session:
// formatted recent history plus attached document summaries.
type SessionContext struct {
	Conversation string
	Documents    []SessionDocument
}

func (s SessionContext) DocumentTitles() []string {
	if len(s.Documents) == 0 {
		return nil
	}
	titles := make([]string, 0, len(s.Documents))
	for _, doc := range s.Documents {
		titles = append(titles, doc.Title)
	}
	return titles
}

// GenerationRequest is the single entry-point input. Category is the content
// category of the deliverable ("newsletter", "market_commentary", ...);
// CurrentContent carries the draft being refined, when there is one.
type GenerationRequest struct {
	Prompt         string      `json:"prompt"`
	Category       string      `json:"category"`
	Audience       string      `json:"audience,omitempty"`
	SessionID      string      `json:"session_id,omitempty"`
	CurrentContent string      `json:"current_content,omitempty"`
	Type           RequestType `json:"type,omitempty"`
}

// GenerationResult is created per call and not persisted by this core. The
// metadata fields are mandatory output: downstream compliance review depends
// on knowing how the text was produced.
type GenerationResult struct {
	ID                string         `json:"id"`
	Text              string         `json:"text"`
	Category          string         `json:"category"`
	SearchStrategy    SearchStrategy `json:"search_strategy"`
	Tier              Tier           `json:"tier"`
	FallbackUsed      bool           `json:"fallback_used"`
	FallbackReason    string         `json:"fallback_reason,omitempty"`
	EmergencyFallback bool           `json:"emergency_fallback"`
	EmergencyCause    string         `json:"emergency_cause,omitempty"`
	ExampleCount      int            `json:"example_count"`
	DisclaimerCount   int            `json:"disclaimer_count"`
	QualityScore      float64        `json:"quality_score"`
	SessionID         string         `json:"session_id,omitempty"`
	DocumentTitles    []string       `json:"document_titles,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}
