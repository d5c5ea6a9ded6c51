package conversation

import (
	"context"
	"strings"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

// Service gathers the conversational state of an advisor session: recent
// prompt/response turns and summaries of uploaded documents.
type Service struct {
	cfg           *config.AppConfig
	conversations core.ConversationStore
	documents     core.DocumentStore
}

func NewService(cfg *config.AppConfig, conversations core.ConversationStore, documents core.DocumentStore) *Service {
	return &Service{
		cfg:           cfg,
		conversations: conversations,
		documents:     documents,
	}
}

// SessionContext loads what the session already holds. Each lookup degrades
// to an empty section on failure; generation proceeds with whatever loaded.
func (s *Service) SessionContext(ctx context.Context, sessionID string, includeHistory bool) core.SessionContext {
	var sc core.SessionContext
	if sessionID == "" {
		return sc
	}

	logger := log.FromCtx(ctx)

	if includeHistory {
		turns, err := s.conversations.Recent(ctx, sessionID, s.cfg.HistoryTurns)
		if err != nil {
			logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load conversation history")
		} else {
			sc.Conversation = formatTurns(turns)
		}
	}

	docs, err := s.documents.SessionDocuments(ctx, sessionID)
	if err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to load session documents")
	} else {
		sc.Documents = docs
	}

	return sc
}

// formatTurns renders chronological turns as a transcript. Turns with an
// empty response (still in flight when snapshotted) keep the prompt only.
func formatTurns(turns []core.Turn) string {
	if len(turns) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range turns {
		b.WriteString("Advisor: ")
		b.WriteString(t.Prompt)
		b.WriteByte('\n')
		if t.Response != "" {
			b.WriteString(core.WarrenName + ": ")
			b.WriteString(t.Response)
			b.WriteByte('\n')
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
