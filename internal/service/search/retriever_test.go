package search

import (
	"context"
	"errors"
	"testing"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
)

func testSearchConfig() *config.SearchConfig {
	return &config.SearchConfig{
		ScoreThreshold:  0.65,
		ExampleLimit:    3,
		DisclaimerLimit: 3,
	}
}

type fakeVectorStore struct {
	readiness   core.Readiness
	byKind      map[string][]core.EvidenceItem
	errByKind   map[string]error
	searchCalls int
}

func (s *fakeVectorStore) Search(ctx context.Context, vector []float32, kind, category string, threshold float64, limit int) ([]core.EvidenceItem, error) {
	s.searchCalls++
	if err := s.errByKind[kind]; err != nil {
		return nil, err
	}
	return s.byKind[kind], nil
}

func (s *fakeVectorStore) Readiness(ctx context.Context) core.Readiness {
	return s.readiness
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
	last  string
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	e.last = text
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

type fakeKeywordStore struct {
	examples        []core.EvidenceItem
	disclaimers     []core.EvidenceItem
	searchErr       error
	disclaimersErr  error
	searchCalls     int
	lastSearchQuery string
}

func (s *fakeKeywordStore) Search(ctx context.Context, query, kind, category string, limit int) ([]core.EvidenceItem, error) {
	s.searchCalls++
	s.lastSearchQuery = query
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.examples, nil
}

func (s *fakeKeywordStore) DisclaimersFor(ctx context.Context, category string) ([]core.EvidenceItem, error) {
	if s.disclaimersErr != nil {
		return nil, s.disclaimersErr
	}
	return s.disclaimers, nil
}

func TestVectorBundle_IndexNotReady(t *testing.T) {
	store := &fakeVectorStore{readiness: core.Readiness{Ready: false, Reason: "index not built"}}
	embedder := &fakeEmbedder{vec: []float32{0.1}}
	r := NewVectorRetriever(testSearchConfig(), store, embedder)

	bundle := r.Bundle(context.Background(), Query{Text: "growth"})

	if bundle.SearchAvailable {
		t.Error("expected bundle marked unavailable")
	}
	if bundle.Unavailability != "index not built" {
		t.Errorf("Unavailability = %q", bundle.Unavailability)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder called despite index being down (%d calls)", embedder.calls)
	}
	if store.searchCalls != 0 {
		t.Errorf("search ran despite index being down (%d calls)", store.searchCalls)
	}
}

func TestVectorBundle_EmbeddingFailure(t *testing.T) {
	store := &fakeVectorStore{readiness: core.Readiness{Ready: true}}
	embedder := &fakeEmbedder{err: errors.New("api down")}
	r := NewVectorRetriever(testSearchConfig(), store, embedder)

	bundle := r.Bundle(context.Background(), Query{Text: "growth"})

	if bundle.SearchAvailable {
		t.Error("expected bundle marked unavailable when the query cannot be embedded")
	}
	if store.searchCalls != 0 {
		t.Errorf("search ran without a query vector (%d calls)", store.searchCalls)
	}
}

func TestVectorBundle_Success(t *testing.T) {
	store := &fakeVectorStore{
		readiness: core.Readiness{Ready: true},
		byKind: map[string][]core.EvidenceItem{
			core.KindExample:    {item("e1", core.KindExample), item("e2", core.KindExample)},
			core.KindDisclaimer: {item("d1", core.KindDisclaimer)},
		},
	}
	embedder := &fakeEmbedder{vec: []float32{0.1, 0.2}}
	r := NewVectorRetriever(testSearchConfig(), store, embedder)

	bundle := r.Bundle(context.Background(), Query{Text: "growth", Category: "newsletter"})

	if !bundle.SearchAvailable {
		t.Fatal("expected available bundle")
	}
	if bundle.ExampleCount() != 2 || bundle.DisclaimerCount() != 1 {
		t.Errorf("got %d examples, %d disclaimers", bundle.ExampleCount(), bundle.DisclaimerCount())
	}
	if bundle.Strategy != core.StrategyVector {
		t.Errorf("Strategy = %v", bundle.Strategy)
	}
}

func TestVectorBundle_PartialFailure(t *testing.T) {
	store := &fakeVectorStore{
		readiness: core.Readiness{Ready: true},
		byKind: map[string][]core.EvidenceItem{
			core.KindDisclaimer: {item("d1", core.KindDisclaimer)},
		},
		errByKind: map[string]error{core.KindExample: errors.New("query timeout")},
	}
	embedder := &fakeEmbedder{vec: []float32{0.1}}
	r := NewVectorRetriever(testSearchConfig(), store, embedder)

	bundle := r.Bundle(context.Background(), Query{Text: "growth"})

	if !bundle.SearchAvailable {
		t.Error("partial failure must not mark the whole bundle unavailable")
	}
	if bundle.ExampleCount() != 0 {
		t.Errorf("failed search produced %d examples", bundle.ExampleCount())
	}
	if bundle.DisclaimerCount() != 1 {
		t.Errorf("surviving search lost its results: %d disclaimers", bundle.DisclaimerCount())
	}
}

func TestVectorBundle_AudienceFoldedIntoQuery(t *testing.T) {
	store := &fakeVectorStore{readiness: core.Readiness{Ready: true}}
	embedder := &fakeEmbedder{vec: []float32{0.1}}
	r := NewVectorRetriever(testSearchConfig(), store, embedder)

	r.Bundle(context.Background(), Query{Text: "retirement tips", Audience: "retirees"})

	if embedder.last != "retirement tips for retirees" {
		t.Errorf("embedded query = %q", embedder.last)
	}
}

func TestKeywordBundle_Success(t *testing.T) {
	store := &fakeKeywordStore{
		examples: []core.EvidenceItem{item("e1", core.KindExample)},
		disclaimers: []core.EvidenceItem{
			item("d1", core.KindDisclaimer),
			item("d2", core.KindDisclaimer),
			item("d3", core.KindDisclaimer),
			item("d4", core.KindDisclaimer),
		},
	}
	r := NewKeywordRetriever(testSearchConfig(), store)

	bundle := r.Bundle(context.Background(), Query{Text: "growth", Category: "newsletter"})

	if bundle.Strategy != core.StrategyText {
		t.Errorf("Strategy = %v", bundle.Strategy)
	}
	if bundle.ExampleCount() != 1 {
		t.Errorf("got %d examples", bundle.ExampleCount())
	}
	if bundle.DisclaimerCount() != 3 {
		t.Errorf("expected disclaimers trimmed to limit, got %d", bundle.DisclaimerCount())
	}
}

func TestKeywordBundle_EmptyQuerySkipsExampleSearch(t *testing.T) {
	store := &fakeKeywordStore{
		disclaimers: []core.EvidenceItem{item("d1", core.KindDisclaimer)},
	}
	r := NewKeywordRetriever(testSearchConfig(), store)

	bundle := r.Bundle(context.Background(), Query{Text: "   ", Category: "newsletter"})

	if store.searchCalls != 0 {
		t.Errorf("example search ran on a blank query (%d calls)", store.searchCalls)
	}
	if bundle.DisclaimerCount() != 1 {
		t.Errorf("disclaimer lookup skipped: %d", bundle.DisclaimerCount())
	}
}

func TestKeywordBundle_DegradesPerLookup(t *testing.T) {
	store := &fakeKeywordStore{
		searchErr:   errors.New("db locked"),
		disclaimers: []core.EvidenceItem{item("d1", core.KindDisclaimer)},
	}
	r := NewKeywordRetriever(testSearchConfig(), store)

	bundle := r.Bundle(context.Background(), Query{Text: "growth"})

	if bundle.ExampleCount() != 0 {
		t.Errorf("failed search produced examples: %d", bundle.ExampleCount())
	}
	if bundle.DisclaimerCount() != 1 {
		t.Errorf("independent lookup lost: %d disclaimers", bundle.DisclaimerCount())
	}
}
