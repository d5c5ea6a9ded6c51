package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/warrenhq/warren/internal/core"
)

func TestConversations_RecentReturnsChronologicalWindow(t *testing.T) {
	repo := NewConversationsRepo(newTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		err := repo.Append(ctx, core.Turn{
			SessionID: "s1",
			Prompt:    fmt.Sprintf("prompt %d", i),
			Response:  fmt.Sprintf("response %d", i),
			Tier:      core.TierStandard,
		})
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	turns, err := repo.Recent(ctx, "s1", 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}

	if len(turns) != 3 {
		t.Fatalf("got %d turns, want 3", len(turns))
	}
	for i, want := range []string{"prompt 3", "prompt 4", "prompt 5"} {
		if turns[i].Prompt != want {
			t.Errorf("turns[%d].Prompt = %q, want %q", i, turns[i].Prompt, want)
		}
	}
	if turns[0].Tier != core.TierStandard {
		t.Errorf("tier = %q", turns[0].Tier)
	}
	if turns[0].CreatedAt.IsZero() {
		t.Error("created_at not populated")
	}
}

func TestConversations_SessionIsolation(t *testing.T) {
	repo := NewConversationsRepo(newTestDB(t))
	ctx := context.Background()

	if err := repo.Append(ctx, core.Turn{SessionID: "s1", Prompt: "mine"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, core.Turn{SessionID: "s2", Prompt: "theirs"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	turns, err := repo.Recent(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 1 || turns[0].Prompt != "mine" {
		t.Errorf("turns = %+v", turns)
	}
}

func TestConversations_RecentEmptySession(t *testing.T) {
	repo := NewConversationsRepo(newTestDB(t))

	turns, err := repo.Recent(context.Background(), "missing", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(turns) != 0 {
		t.Errorf("turns = %+v", turns)
	}
}
