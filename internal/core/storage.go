package core

import (
	"context"
	"time"
)

// Readiness reports whether the vector index can serve queries and, when it
// cannot, why not.
type Readiness struct {
	Ready  bool
	Reason string
}

type VectorEvidenceStore interface {
	Search(ctx context.Context, vector []float32, kind, category string, threshold float64, limit int) ([]EvidenceItem, error)
	Readiness(ctx context.Context) Readiness
}

type KeywordEvidenceStore interface {
	Search(ctx context.Context, query, kind, category string, limit int) ([]EvidenceItem, error)
	DisclaimersFor(ctx context.Context, category string) ([]EvidenceItem, error)
}

type ConversationStore interface {
	Recent(ctx context.Context, sessionID string, limit int) ([]Turn, error)
	Append(ctx context.Context, turn Turn) error
}

type DocumentStore interface {
	SessionDocuments(ctx context.Context, sessionID string) ([]SessionDocument, error)
}

// Turn is one prompt/response exchange within an advisor session.
type Turn struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
	Tier      Tier      `json:"tier,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
