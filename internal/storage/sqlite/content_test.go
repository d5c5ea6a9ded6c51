package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/warrenhq/warren/internal/core"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustInsert(t *testing.T, repo *ContentRepo, rec ContentRecord) {
	t.Helper()
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("Insert %s: %v", rec.ID, err)
	}
}

func TestContentSearch_RanksByCosine(t *testing.T) {
	repo := NewContentRepo(newTestDB(t))
	mustInsert(t, repo, ContentRecord{ID: "exact", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0}})
	mustInsert(t, repo, ContentRecord{ID: "close", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 1}})
	mustInsert(t, repo, ContentRecord{ID: "orthogonal", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{0, 1}})

	items, err := repo.Search(context.Background(), []float32{1, 0}, core.KindExample, "", 0.5, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "exact" || items[1].ID != "close" {
		t.Errorf("order = %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Score <= items[1].Score {
		t.Errorf("scores not descending: %f, %f", items[0].Score, items[1].Score)
	}
}

func TestContentSearch_ThresholdExcludes(t *testing.T) {
	repo := NewContentRepo(newTestDB(t))
	mustInsert(t, repo, ContentRecord{ID: "exact", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0}})
	mustInsert(t, repo, ContentRecord{ID: "close", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 1}})

	items, err := repo.Search(context.Background(), []float32{1, 0}, core.KindExample, "", 0.9, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(items) != 1 || items[0].ID != "exact" {
		t.Errorf("items = %+v", items)
	}
}

func TestContentSearch_LimitApplies(t *testing.T) {
	repo := NewContentRepo(newTestDB(t))
	mustInsert(t, repo, ContentRecord{ID: "a", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0}})
	mustInsert(t, repo, ContentRecord{ID: "b", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0.1}})
	mustInsert(t, repo, ContentRecord{ID: "c", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0.2}})

	items, err := repo.Search(context.Background(), []float32{1, 0}, core.KindExample, "", 0.1, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
}

func TestContentSearch_CategoryFilter(t *testing.T) {
	repo := NewContentRepo(newTestDB(t))
	mustInsert(t, repo, ContentRecord{ID: "newsletter", Title: "t", Body: "b", Kind: core.KindExample, Category: "newsletter", Embedding: []float32{1, 0}})
	mustInsert(t, repo, ContentRecord{ID: "social", Title: "t", Body: "b", Kind: core.KindExample, Category: "social", Embedding: []float32{1, 0}})
	mustInsert(t, repo, ContentRecord{ID: "generic", Title: "t", Body: "b", Kind: core.KindExample, Category: "", Embedding: []float32{1, 0}})

	items, err := repo.Search(context.Background(), []float32{1, 0}, core.KindExample, "newsletter", 0.5, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	got := map[string]bool{}
	for _, item := range items {
		got[item.ID] = true
	}
	if !got["newsletter"] || !got["generic"] || got["social"] {
		t.Errorf("items = %+v", items)
	}
}

func TestContentSearch_KindFilter(t *testing.T) {
	repo := NewContentRepo(newTestDB(t))
	mustInsert(t, repo, ContentRecord{ID: "ex", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0}})
	mustInsert(t, repo, ContentRecord{ID: "disc", Title: "t", Body: "b", Kind: core.KindDisclaimer, Embedding: []float32{1, 0}})

	items, err := repo.Search(context.Background(), []float32{1, 0}, core.KindDisclaimer, "", 0.5, 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(items) != 1 || items[0].ID != "disc" || items[0].Kind != core.KindDisclaimer {
		t.Errorf("items = %+v", items)
	}
}

func TestReadiness(t *testing.T) {
	repo := NewContentRepo(newTestDB(t))

	r := repo.Readiness(context.Background())
	if r.Ready {
		t.Error("empty store reported ready")
	}
	if r.Reason != "no embedded content" {
		t.Errorf("reason = %q", r.Reason)
	}

	mustInsert(t, repo, ContentRecord{ID: "text-only", Title: "t", Body: "b", Kind: core.KindExample})
	if repo.Readiness(context.Background()).Ready {
		t.Error("store with no embeddings reported ready")
	}

	mustInsert(t, repo, ContentRecord{ID: "embedded", Title: "t", Body: "b", Kind: core.KindExample, Embedding: []float32{1, 0}})
	if !repo.Readiness(context.Background()).Ready {
		t.Error("store with embeddings reported not ready")
	}
}
