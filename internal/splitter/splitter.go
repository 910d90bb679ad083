package splitter

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"resume-rag/internal/models"
)

// Splitter cuts loader segments into overlapping windows sized for
// embedding. Splitting is character based with recursive fallback to
// natural separators (paragraphs, lines, words), and is deterministic.
type Splitter struct {
	inner textsplitter.RecursiveCharacter
}

func New(chunkSize, chunkOverlap int) *Splitter {
	return &Splitter{
		inner: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// Split chunks every segment, propagating source and page metadata.
// Chunk IDs are 1-based within each segment.
func (s *Splitter) Split(segments []models.Segment) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for _, seg := range segments {
		parts, err := s.inner.SplitText(seg.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to split segment from %s: %w", seg.Source, err)
		}
		for i, part := range parts {
			if part == "" {
				continue
			}
			chunks = append(chunks, models.Chunk{
				Content: part,
				Source:  seg.Source,
				Page:    seg.Page,
				ChunkID: i + 1,
			})
		}
	}
	return chunks, nil
}
