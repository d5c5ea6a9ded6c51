package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warrenhq/warren/internal/core"
)

type countingStore struct {
	mu       sync.Mutex
	appended []core.Turn
	notify   chan core.Turn
}

func (s *countingStore) Recent(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	return nil, nil
}

func (s *countingStore) Append(ctx context.Context, turn core.Turn) error {
	s.mu.Lock()
	s.appended = append(s.appended, turn)
	s.mu.Unlock()
	if s.notify != nil {
		s.notify <- turn
	}
	return nil
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appended)
}

func TestRecorder_StartPersistsTurns(t *testing.T) {
	store := &countingStore{notify: make(chan core.Turn, 1)}
	r := NewRecorder(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = r.Start(ctx) }()

	r.Record(ctx, core.Turn{SessionID: "s1", Prompt: "p", Response: "r"})

	select {
	case turn := <-store.notify:
		assert.Equal(t, "s1", turn.SessionID)
	case <-time.After(2 * time.Second):
		t.Fatal("turn was never persisted")
	}
}

func TestRecorder_ShutdownDrains(t *testing.T) {
	store := &countingStore{}
	r := NewRecorder(store)

	for i := 0; i < 3; i++ {
		r.Record(context.Background(), core.Turn{SessionID: "s1"})
	}

	require.NoError(t, r.Shutdown(context.Background()))
	assert.Equal(t, 3, store.count())
}

func TestRecorder_FullQueueDrops(t *testing.T) {
	store := &countingStore{}
	r := NewRecorder(store)

	for i := 0; i < recordQueueSize+5; i++ {
		r.Record(context.Background(), core.Turn{SessionID: "s1"})
	}

	require.NoError(t, r.Shutdown(context.Background()))
	assert.Equal(t, recordQueueSize, store.count())
}

func TestRecorder_ShutdownStopsOnCancelledContext(t *testing.T) {
	store := &countingStore{}
	r := NewRecorder(store)
	r.Record(context.Background(), core.Turn{SessionID: "s1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, r.Shutdown(ctx))
	assert.Zero(t, store.count())
}
