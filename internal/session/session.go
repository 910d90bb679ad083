package session

import (
	"resume-rag/internal/models"
)

// Session carries the per-conversation state that used to be ambient:
// the selected analysis mode, the files loaded so far, and the
// append-only message history. One Session per user conversation.
type Session struct {
	mode     string
	files    []string
	messages []models.Message
}

func New() *Session {
	return &Session{mode: models.ModeGeneral}
}

// Mode returns the currently selected analysis mode.
func (s *Session) Mode() string { return s.mode }

// SetMode selects an analysis mode; unknown values fall back to general
// at render time, so the raw value is kept as chosen.
func (s *Session) SetMode(mode string) { s.mode = mode }

// AddFile records an ingested file name.
func (s *Session) AddFile(name string) { s.files = append(s.files, name) }

// Files lists the names of files ingested during this session.
func (s *Session) Files() []string { return s.files }

// AppendUser appends a user message to the history.
func (s *Session) AppendUser(content string) {
	s.messages = append(s.messages, models.Message{
		Role:    models.RoleUser,
		Content: content,
	})
}

// AppendAssistant appends an assistant message with its source chunks.
func (s *Session) AppendAssistant(content string, sources []models.SearchResult) {
	s.messages = append(s.messages, models.Message{
		Role:    models.RoleAssistant,
		Content: content,
		Sources: sources,
	})
}

// Messages returns the conversation history in order.
func (s *Session) Messages() []models.Message { return s.messages }

// Reset clears history and loaded files, keeping the selected mode.
func (s *Session) Reset() {
	s.files = nil
	s.messages = nil
}
