package prompt

import (
	"fmt"
	"strings"

	"resume-rag/internal/models"
)

// Template returns the prompt template for an analysis mode, falling
// back to the general template for anything unrecognized.
func Template(mode string) string {
	if tpl, ok := models.ResumePrompts[mode]; ok {
		return tpl
	}
	return models.ResumePrompts[models.ModeGeneral]
}

// Render fills the mode's template with the retrieved chunks and the
// question. Chunk texts are concatenated in retrieval order.
func Render(mode string, results []models.SearchResult, question string) string {
	var context strings.Builder
	for _, res := range results {
		context.WriteString(res.Content)
		context.WriteString("\n\n")
	}
	return fmt.Sprintf(Template(mode), context.String(), question)
}

// ValidMode reports whether mode is one of the recognized analysis modes.
func ValidMode(mode string) bool {
	_, ok := models.ResumePrompts[mode]
	return ok
}
