package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"

	"resume-rag/internal/config"
	"resume-rag/internal/embedding"
	"resume-rag/internal/llmservice"
	"resume-rag/internal/models"
	"resume-rag/internal/parser"
	"resume-rag/internal/prompt"
	"resume-rag/internal/session"
	"resume-rag/internal/splitter"
)

// ErrNoContext means retrieval found nothing; the caller should tell the
// user to upload documents first.
var ErrNoContext = errors.New("no context retrieved: upload documents first")

// ModelError marks a failed generation call (connectivity, timeout).
// The session stays usable; the user may retry.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model unavailable: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// VectorStore is the retrieval contract both backends implement.
type VectorStore interface {
	Add(ctx context.Context, records []models.Record) error
	Search(ctx context.Context, queryEmbedding []float32, k int) ([]models.SearchResult, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// Response is one answered question with the chunks it was grounded on.
type Response struct {
	Query   string
	Content string
	Sources []models.SearchResult
}

// RAG wires the loader, splitter, embedder, vector store and chat model
// into the ingest and query paths.
type RAG struct {
	store    VectorStore
	embedder embeddings.Embedder
	model    llms.Model
	splitter *splitter.Splitter
	cfg      *config.Config
}

func NewRAG(store VectorStore, embedder embeddings.Embedder, model llms.Model, cfg *config.Config) *RAG {
	return &RAG{
		store:    store,
		embedder: embedder,
		model:    model,
		splitter: splitter.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap),
		cfg:      cfg,
	}
}

// Ingest parses, chunks, embeds and stores each file in turn. Files are
// independent: a failed file is logged and skipped, the rest proceed.
// Within one file ingestion is all-or-nothing; every chunk is embedded
// before anything is written. Returns the names of ingested files.
func (r *RAG) Ingest(ctx context.Context, sess *session.Session, paths []string) ([]string, error) {
	var ingested []string
	var firstErr error
	for _, path := range paths {
		source, err := r.ingestFile(ctx, path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Skipping file")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if source == "" {
			log.Warn().Str("file", path).Msg("No text extracted, skipping")
			continue
		}
		ingested = append(ingested, source)
		if sess != nil {
			sess.AddFile(source)
		}
	}
	if len(ingested) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return ingested, nil
}

func (r *RAG) ingestFile(ctx context.Context, path string) (string, error) {
	segments, err := parser.Parse(path)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "", nil
	}

	chunks, err := r.splitter.Split(segments)
	if err != nil {
		return "", err
	}

	records, err := embedding.EmbedChunks(ctx, r.embedder, chunks)
	if err != nil {
		return "", err
	}

	if err := r.store.Add(ctx, records); err != nil {
		return "", err
	}

	log.Debug().Str("file", path).Int("chunks", len(records)).Msg("Ingested file")
	return segments[0].Source, nil
}

// Query answers a question in the session's analysis mode: retrieve
// top-k chunks, render the mode's prompt, call the model. The exchange
// is appended to the session history.
func (r *RAG) Query(ctx context.Context, sess *session.Session, question string) (*Response, error) {
	mode := models.ModeGeneral
	if sess != nil {
		mode = sess.Mode()
	}

	queryEmbedding, err := embedding.EmbedQuery(ctx, r.embedder, question)
	if err != nil {
		return nil, err
	}

	results, err := r.store.Search(ctx, queryEmbedding, r.cfg.RAG.TopK)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoContext
	}

	rendered := prompt.Render(mode, results, question)
	answer, err := llmservice.Generate(ctx, r.model, rendered, r.cfg.RAG.Temperature)
	if err != nil {
		return nil, &ModelError{Err: err}
	}

	if sess != nil {
		sess.AppendUser(question)
		sess.AppendAssistant(answer, results)
	}

	return &Response{
		Query:   question,
		Content: answer,
		Sources: results,
	}, nil
}
