package sqlite

import (
	"context"
	"testing"
)

func TestSessionDocuments_OnlyProcessedWithSummary(t *testing.T) {
	repo := NewDocumentsRepo(newTestDB(t))
	ctx := context.Background()

	records := []DocumentRecord{
		{SessionID: "s1", Title: "Q3 outlook", Summary: "Markets were mixed.", WordCount: 1200, Processed: true},
		{SessionID: "s1", Title: "Still uploading", Summary: "partial", Processed: false},
		{SessionID: "s1", Title: "No summary yet", Summary: "", Processed: true},
		{SessionID: "s2", Title: "Someone else's", Summary: "text", Processed: true},
	}
	for _, rec := range records {
		if err := repo.Add(ctx, rec); err != nil {
			t.Fatalf("Add %s: %v", rec.Title, err)
		}
	}

	docs, err := repo.SessionDocuments(ctx, "s1")
	if err != nil {
		t.Fatalf("SessionDocuments: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	if docs[0].Title != "Q3 outlook" || docs[0].WordCount != 1200 {
		t.Errorf("doc = %+v", docs[0])
	}
}
