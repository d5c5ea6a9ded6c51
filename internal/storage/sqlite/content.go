package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

// ContentRepo is the embedding-similarity access path over the content
// library. Similarity runs in-process over stored vectors; an approved
// library is small enough that a scan serves as the index.
type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// ContentRecord is one library entry as written by ingestion. An entry
// without an embedding is reachable through keyword search only.
type ContentRecord struct {
	ID        string
	Title     string
	Body      string
	Kind      string
	Category  string
	Embedding []float32
}

func (r *ContentRepo) Insert(ctx context.Context, rec ContentRecord) error {
	var blob []byte
	if len(rec.Embedding) > 0 {
		b, err := serializeVector(rec.Embedding)
		if err != nil {
			return err
		}
		blob = b
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO content (id, title, body, kind, category, embedding) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Body, rec.Kind, rec.Category, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// Search returns the best-scoring items of the kind at or above threshold.
// Entries tagged with an empty category apply to every category.
func (r *ContentRepo) Search(ctx context.Context, vector []float32, kind, category string, threshold float64, limit int) ([]core.EvidenceItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, category, embedding FROM content
		 WHERE kind = ? AND (category = ? OR category = '') AND embedding IS NOT NULL`,
		kind, category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	var items []core.EvidenceItem
	for rows.Next() {
		var item core.EvidenceItem
		var blob []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Category, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}

		candidate, err := deserializeVector(blob)
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("id", item.ID).Msg("skipping content with bad embedding")
			continue
		}

		score := cosineSimilarity(vector, candidate)
		if score < threshold {
			continue
		}

		item.Kind = kind
		item.Score = score
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items, nil
}

func (r *ContentRepo) Readiness(ctx context.Context) core.Readiness {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content WHERE embedding IS NOT NULL`).Scan(&n)
	if err != nil {
		return core.Readiness{Reason: "content store unreachable"}
	}
	if n == 0 {
		return core.Readiness{Reason: "no embedded content"}
	}
	return core.Readiness{Ready: true}
}

var _ core.VectorEvidenceStore = (*ContentRepo)(nil)
