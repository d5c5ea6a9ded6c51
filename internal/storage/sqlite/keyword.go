package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/warrenhq/warren/internal/core"
)

const minTermLength = 3

// KeywordRepo is the term-matching access path over the content library. It
// serves the fallback strategy, so it must work with no embeddings at all.
type KeywordRepo struct {
	db *sql.DB
}

func NewKeywordRepo(db *sql.DB) *KeywordRepo {
	return &KeywordRepo{db: db}
}

// Search ranks content by how many query terms appear in the title or body.
// Score is the matched fraction of terms.
func (r *KeywordRepo) Search(ctx context.Context, query, kind, category string, limit int) ([]core.EvidenceItem, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	matches := make([]string, len(terms))
	var selectArgs, whereArgs []any
	for i, term := range terms {
		matches[i] = "(title LIKE ? OR body LIKE ?)"
		pattern := "%" + term + "%"
		selectArgs = append(selectArgs, pattern, pattern)
		whereArgs = append(whereArgs, pattern, pattern)
	}

	q := fmt.Sprintf(
		`SELECT id, title, body, category, (%s) AS hits
		 FROM content
		 WHERE kind = ? AND (category = ? OR category = '') AND (%s)
		 ORDER BY hits DESC, id
		 LIMIT ?`,
		strings.Join(matches, " + "),
		strings.Join(matches, " OR "),
	)

	args := append(selectArgs, kind, category)
	args = append(args, whereArgs...)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query content by keyword: %w", err)
	}
	defer rows.Close()

	var items []core.EvidenceItem
	for rows.Next() {
		var item core.EvidenceItem
		var hits int
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Category, &hits); err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		item.Kind = kind
		item.Score = float64(hits) / float64(len(terms))
		items = append(items, item)
	}

	return items, rows.Err()
}

// DisclaimersFor returns the disclaimers bound to a category, most specific
// first. Lookup is by category tag, not term match, so required language
// surfaces no matter how the prompt is worded.
func (r *KeywordRepo) DisclaimersFor(ctx context.Context, category string) ([]core.EvidenceItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, body, category FROM content
		 WHERE kind = ? AND (category = ? OR category = '')
		 ORDER BY category = '', id`,
		core.KindDisclaimer, category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query disclaimers: %w", err)
	}
	defer rows.Close()

	var items []core.EvidenceItem
	for rows.Next() {
		var item core.EvidenceItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &item.Category); err != nil {
			return nil, fmt.Errorf("failed to scan disclaimer: %w", err)
		}
		item.Kind = core.KindDisclaimer
		items = append(items, item)
	}

	return items, rows.Err()
}

func queryTerms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var terms []string
	for _, f := range fields {
		if len(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}

var _ core.KeywordEvidenceStore = (*KeywordRepo)(nil)
