package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"resume-rag/internal/config"
	"resume-rag/internal/models"
)

// Document is a stored resume chunk row with its pgvector embedding.
type Document struct {
	bun.BaseModel `bun:"table:documents,alias:d"`
	ID             string    `bun:"id,pk"`
	Content        string    `bun:"content,notnull"`
	Embedding      []float32 `bun:"embedding,notnull,type:vector(768)"`
	SourceFilename string    `bun:"source_filename,notnull"`
	PageNumber     int       `bun:"page_number"`
	ChunkID        int       `bun:"chunk_id"`
	Similarity     float64   `bun:"similarity,scanonly"`
}

func ConnectDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN))), nil
}

func NewDB(sqldb *sql.DB, debug bool) *bun.DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return db
}

// Store is the Postgres-backed vector store, selected when a DSN is
// configured. Similarity search relies on the pgvector extension.
type Store struct {
	db *bun.DB
}

func NewStore(ctx context.Context, db *bun.DB) (*Store, error) {
	if err := initDB(ctx, db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func initDB(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Document)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (s *Store) Add(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]Document, 0, len(records))
	for _, rec := range records {
		if rec.Source == "" {
			return fmt.Errorf("record %s has no source filename", rec.ID)
		}
		docs = append(docs, Document{
			ID:             rec.ID,
			Content:        rec.Content,
			Embedding:      rec.Embedding,
			SourceFilename: rec.Source,
			PageNumber:     rec.Page,
			ChunkID:        rec.ChunkID,
		})
	}

	_, err := s.db.NewInsert().Model(&docs).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to store documents: %w", err)
	}
	return nil
}

func (s *Store) Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.SearchResult, error) {
	if k <= 0 {
		return nil, nil
	}

	var docs []Document
	err := s.db.NewSelect().
		Model(&docs).
		ColumnExpr("d.*").
		ColumnExpr("1 - (embedding <=> ?) AS similarity", queryEmbedding).
		OrderExpr("embedding <=> ?", queryEmbedding).
		Limit(k).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	out := make([]models.SearchResult, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.SearchResult{
			Content:    doc.Content,
			Similarity: float32(doc.Similarity),
			Source:     doc.SourceFilename,
			Page:       doc.PageNumber,
		})
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	return s.db.NewSelect().Model((*Document)(nil)).Count(ctx)
}

// Clear drops and recreates the documents table.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.NewDropTable().Model((*Document)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to drop documents: %w", err)
	}
	return initDB(ctx, s.db)
}
