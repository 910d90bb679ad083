package chromemdb

import (
	"context"
	"testing"

	"resume-rag/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore("", "test_collection", true)
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return s
}

func record(id, content, source string, embedding []float32) models.Record {
	return models.Record{
		ID:        id,
		Content:   content,
		Embedding: embedding,
		Source:    source,
		Page:      1,
		ChunkID:   1,
	}
}

func TestStore_SearchOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Add(ctx, []models.Record{
		record("a", "Python and Django", "py.txt", []float32{1, 0, 0}),
		record("b", "Some Python, mostly Java", "mixed.txt", []float32{0.8, 0.6, 0}),
		record("c", "Professional chef", "chef.txt", []float32{0, 0, 1}),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Content != "Python and Django" {
		t.Errorf("expected closest chunk first, got %q", results[0].Content)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Error("results not ordered by decreasing similarity")
	}
	if results[0].Source != "py.txt" {
		t.Errorf("source metadata lost: %q", results[0].Source)
	}
}

func TestStore_KClampedToCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Add(ctx, []models.Record{
		record("a", "one", "a.txt", []float32{1, 0, 0}),
		record("b", "two", "b.txt", []float32{0, 1, 0}),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected all 2 results, got %d", len(results))
	}
}

func TestStore_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	results, err := s.Search(ctx, []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("search on empty collection: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Add(ctx, []models.Record{record("a", "one", "a.txt", []float32{1, 0, 0})}); err != nil {
		t.Fatalf("add: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.Clear(ctx); err != nil {
			t.Fatalf("clear #%d: %v", i+1, err)
		}
	}

	results, err := s.Search(ctx, []float32{1, 0, 0}, 5)
	if err != nil {
		t.Fatalf("search after clear: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty store after clear, got %d results", len(results))
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count 0 after clear, got %d", count)
	}
}

func TestStore_RejectsMissingSource(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.Add(ctx, []models.Record{record("a", "one", "", []float32{1, 0, 0})})
	if err == nil {
		t.Fatal("expected error for record without source filename")
	}
}
