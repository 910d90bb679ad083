package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"resume-rag/internal/config"
	"resume-rag/internal/models"
)

// EmbeddingError marks a failure while talking to the embedding model.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// NewEmbedder builds an embedder for the configured provider. Ollama is
// the default; "openai" covers any OpenAI-compatible endpoint.
func NewEmbedder(llmCfg *config.LLMConfig) (*embeddings.EmbedderImpl, error) {
	switch llmCfg.Provider {
	case "", "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(llmCfg.BaseURL),
			ollama.WithModel(llmCfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ollama embedder: %w", err)
		}
		return embeddings.NewEmbedder(llm)
	case "openai":
		llm, err := openai.New(
			openai.WithBaseURL(llmCfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(llmCfg.Key, "Bearer ")),
			openai.WithModel(llmCfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai embedder: %w", err)
		}
		return embeddings.NewEmbedder(llm)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", llmCfg.Provider)
	}
}

// EmbedChunks embeds every chunk and returns the records to store.
// All-or-nothing: the first embedding failure aborts with nothing
// returned, so a file is never half-written to the vector store.
func EmbedChunks(ctx context.Context, embedder embeddings.Embedder, chunks []models.Chunk) ([]models.Record, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	records := make([]models.Record, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := embedder.EmbedQuery(ctx, chunk.Content)
		if err != nil {
			return nil, &EmbeddingError{Err: err}
		}
		records = append(records, models.Record{
			ID:        uuid.NewString(),
			Content:   chunk.Content,
			Embedding: vec,
			Source:    chunk.Source,
			Page:      chunk.Page,
			ChunkID:   chunk.ChunkID,
		})
	}
	return records, nil
}

// EmbedQuery embeds a single query string.
func EmbedQuery(ctx context.Context, embedder embeddings.Embedder, query string) ([]float32, error) {
	vec, err := embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &EmbeddingError{Err: err}
	}
	return vec, nil
}
