package models

// Segment is a raw text segment produced by the document loader,
// before chunking. Page is 1-based; formats without pages use 1.
type Segment struct {
	Content string
	Source  string
	Page    int
}

// Chunk is a bounded-length piece of a segment, the unit of embedding
// and retrieval. ChunkID is 1-based within the parent segment.
type Chunk struct {
	Content string
	Source  string
	Page    int
	ChunkID int
}

// Record is a stored vector record. Immutable once written; removed
// only when the whole collection is cleared.
type Record struct {
	ID        string
	Content   string
	Embedding []float32
	Source    string
	Page      int
	ChunkID   int
}

// SearchResult is one retrieval hit, ordered by decreasing similarity.
type SearchResult struct {
	Content    string
	Similarity float32
	Source     string
	Page       int
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a session's conversation history.
type Message struct {
	Role    string
	Content string
	Sources []SearchResult
}
