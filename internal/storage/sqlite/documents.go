package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/warrenhq/warren/internal/core"
)

type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

// DocumentRecord is one uploaded document as registered for a session.
// Extraction happens upstream; this store holds the summary view only.
type DocumentRecord struct {
	SessionID string
	Title     string
	Summary   string
	WordCount int
	Processed bool
}

func (r *DocumentsRepo) Add(ctx context.Context, rec DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (session_id, title, summary, word_count, processed) VALUES (?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Title, rec.Summary, rec.WordCount, rec.Processed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// SessionDocuments returns processed documents with a usable summary, in
// upload order.
func (r *DocumentsRepo) SessionDocuments(ctx context.Context, sessionID string) ([]core.SessionDocument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT title, summary, word_count FROM documents
		 WHERE session_id = ? AND processed = 1 AND summary != ''
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []core.SessionDocument
	for rows.Next() {
		var d core.SessionDocument
		if err := rows.Scan(&d.Title, &d.Summary, &d.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

var _ core.DocumentStore = (*DocumentsRepo)(nil)
