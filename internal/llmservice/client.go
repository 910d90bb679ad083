package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"resume-rag/internal/config"
)

// NewModel builds the chat model for the configured provider.
func NewModel(llmCfg *config.LLMConfig) (llms.Model, error) {
	switch llmCfg.Provider {
	case "", "ollama":
		return ollama.New(
			ollama.WithServerURL(llmCfg.BaseURL),
			ollama.WithModel(llmCfg.Model),
		)
	case "openai":
		return openai.New(
			openai.WithBaseURL(llmCfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(llmCfg.Key, "Bearer ")),
			openai.WithModel(llmCfg.Model),
		)
	default:
		return nil, fmt.Errorf("unknown chat provider: %s", llmCfg.Provider)
	}
}

// Generate sends a single-turn prompt and returns the model's text.
func Generate(ctx context.Context, model llms.Model, prompt string, temperature float64) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}

	res, err := model.GenerateContent(ctx, messages, llms.WithTemperature(temperature))
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return res.Choices[0].Content, nil
}
