package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"resume-rag/internal/models"
)

const compress = false

// Store encapsulates the embedded chromem-go database: one persistent
// DB directory holding one named collection of resume chunk vectors.
type Store struct {
	db             *chromem.DB
	collection     *chromem.Collection
	collectionName string
}

// NewStore opens (or creates) the database and its collection.
// inMemory is for tests; the CLI always uses the persistent form.
func NewStore(dbPath, collectionName string, inMemory bool) (*Store, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %w", err)
		}
	}

	s := &Store{db: db, collectionName: collectionName}
	if err := s.openCollection(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) openCollection() error {
	c, err := s.db.GetOrCreateCollection(s.collectionName, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to create/get collection: %w", err)
	}
	s.collection = c
	return nil
}

// Add persists the records in one batch. Records must carry a source
// filename; embeddings are precomputed so no embedding func runs here.
func (s *Store) Add(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromem.Document, 0, len(records))
	for _, rec := range records {
		if rec.Source == "" {
			return fmt.Errorf("record %s has no source filename", rec.ID)
		}
		docs = append(docs, chromem.Document{
			ID:        rec.ID,
			Content:   rec.Content,
			Embedding: rec.Embedding,
			Metadata: map[string]string{
				"source":   rec.Source,
				"page":     strconv.Itoa(rec.Page),
				"chunk_id": strconv.Itoa(rec.ChunkID),
			},
		})
	}

	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Search returns up to k records most similar to the query embedding,
// ordered by decreasing similarity. Empty collection yields no results.
func (s *Store) Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.SearchResult, error) {
	count := s.collection.Count()
	if count == 0 || k <= 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryEmbedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %w", err)
	}

	out := make([]models.SearchResult, 0, len(results))
	for _, res := range results {
		page, _ := strconv.Atoi(res.Metadata["page"])
		out = append(out, models.SearchResult{
			Content:    res.Content,
			Similarity: res.Similarity,
			Source:     res.Metadata["source"],
			Page:       page,
		})
	}
	return out, nil
}

// Count reports the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

// Clear deletes the collection and recreates it empty. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.db.DeleteCollection(s.collectionName); err != nil {
		return fmt.Errorf("failed to drop collection: %w", err)
	}
	return s.openCollection()
}
