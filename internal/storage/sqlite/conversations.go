package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

type ConversationsRepo struct {
	db *sql.DB
}

func NewConversationsRepo(db *sql.DB) *ConversationsRepo {
	return &ConversationsRepo{db: db}
}

func (r *ConversationsRepo) Append(ctx context.Context, turn core.Turn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO conversations (session_id, prompt, response, tier) VALUES (?, ?, ?, ?)`,
		turn.SessionID, turn.Prompt, turn.Response, string(turn.Tier),
	)
	if err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *ConversationsRepo) Recent(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	// Fetch the LAST 'limit' turns by ordering DESC
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, prompt, response, tier, created_at FROM conversations
		 WHERE session_id = ? ORDER BY id DESC LIMIT ?`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		var tier string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Prompt, &t.Response, &tier, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Tier = core.Tier(tier)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows arrive newest first; callers want chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Msg("loaded recent turns")
	return turns, nil
}

var _ core.ConversationStore = (*ConversationsRepo)(nil)
