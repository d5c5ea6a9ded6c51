package conversation

import (
	"context"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
	"github.com/warrenhq/warren/pkg/srv"
)

const recordQueueSize = 256

// Recorder persists completed turns off the request path. Callers enqueue
// and move on; a full queue drops the turn, since history is advisory
// context rather than an audit log.
type Recorder struct {
	store core.ConversationStore
	queue chan core.Turn
}

func NewRecorder(store core.ConversationStore) *Recorder {
	return &Recorder{
		store: store,
		queue: make(chan core.Turn, recordQueueSize),
	}
}

// Record enqueues a turn without blocking.
func (r *Recorder) Record(ctx context.Context, turn core.Turn) {
	select {
	case r.queue <- turn:
	default:
		log.FromCtx(ctx).Warn().Str("session_id", turn.SessionID).Msg("record queue full, dropping turn")
	}
}

func (r *Recorder) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("starting conversation recorder")

	for {
		select {
		case <-ctx.Done():
			return nil
		case turn := <-r.queue:
			if err := r.store.Append(ctx, turn); err != nil {
				logger.Error().Err(err).Str("session_id", turn.SessionID).Msg("failed to append turn")
			}
		}
	}
}

// Shutdown persists whatever is still queued, within the shutdown window.
func (r *Recorder) Shutdown(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case turn := <-r.queue:
			if err := r.store.Append(ctx, turn); err != nil {
				logger.Error().Err(err).Str("session_id", turn.SessionID).Msg("failed to append turn during shutdown")
			}
		default:
			return nil
		}
	}
}

var _ srv.Service = (*Recorder)(nil)
