package budget

import (
	"fmt"

	"github.com/warrenhq/warren/internal/core"
)

// Category names one share of the context window.
type Category string

const (
	CategoryConversation   Category = "conversation"
	CategoryCompliance     Category = "compliance"
	CategoryExamples       Category = "examples"
	CategoryDocuments      Category = "documents"
	CategoryUserInput      Category = "user_input"
	CategoryCurrentContent Category = "current_content"
)

const (
	defaultMaxTotal = 8000
	defaultBuffer   = 800
)

// Config is a validated partition of the model context window for one
// request type. BufferTokens is headroom reserved for the model response.
type Config struct {
	RequestType    core.RequestType
	Categories     map[Category]int
	BufferTokens   int
	MaxTotalTokens int
}

// NewConfig rejects partitions whose category shares plus response buffer
// exceed the window.
func NewConfig(rt core.RequestType, categories map[Category]int, buffer, maxTotal int) (Config, error) {
	if maxTotal <= 0 {
		return Config{}, fmt.Errorf("budget config %s: window must be positive, got %d", rt, maxTotal)
	}
	if buffer < 0 {
		return Config{}, fmt.Errorf("budget config %s: negative buffer %d", rt, buffer)
	}

	total := 0
	for cat, tokens := range categories {
		if tokens < 0 {
			return Config{}, fmt.Errorf("budget config %s: negative allocation for %s", rt, cat)
		}
		total += tokens
	}
	if total+buffer > maxTotal {
		return Config{}, fmt.Errorf("budget config %s: allocations %d + buffer %d exceed window %d", rt, total, buffer, maxTotal)
	}

	return Config{
		RequestType:    rt,
		Categories:     categories,
		BufferTokens:   buffer,
		MaxTotalTokens: maxTotal,
	}, nil
}

// ForRequestType returns the canonical partition for a request type. An
// empty or unknown type gets the creation partition.
func ForRequestType(rt core.RequestType) (Config, error) {
	switch rt {
	case core.RequestRefinement:
		// Refinement keeps most of the window for the draft under revision.
		return NewConfig(rt, map[Category]int{
			CategoryConversation:   1000,
			CategoryCompliance:     1400,
			CategoryExamples:       1000,
			CategoryDocuments:      800,
			CategoryUserInput:      800,
			CategoryCurrentContent: 2200,
		}, defaultBuffer, defaultMaxTotal)
	case core.RequestAnalysis:
		// Analysis leans on uploaded documents and the compliance corpus.
		return NewConfig(rt, map[Category]int{
			CategoryConversation:   800,
			CategoryCompliance:     2000,
			CategoryExamples:       600,
			CategoryDocuments:      2600,
			CategoryUserInput:      600,
			CategoryCurrentContent: 600,
		}, defaultBuffer, defaultMaxTotal)
	case core.RequestConversation:
		// Conversational requests privilege session history.
		return NewConfig(rt, map[Category]int{
			CategoryConversation:   3200,
			CategoryCompliance:     1000,
			CategoryExamples:       800,
			CategoryDocuments:      1200,
			CategoryUserInput:      800,
			CategoryCurrentContent: 200,
		}, defaultBuffer, defaultMaxTotal)
	default:
		// Creation weights approved examples over everything else.
		return NewConfig(core.RequestCreation, map[Category]int{
			CategoryConversation:   1200,
			CategoryCompliance:     1400,
			CategoryExamples:       2400,
			CategoryDocuments:      800,
			CategoryUserInput:      600,
			CategoryCurrentContent: 800,
		}, defaultBuffer, defaultMaxTotal)
	}
}
