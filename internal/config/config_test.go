package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if cfg.EmbedLLM.BaseURL != "http://localhost:11434" {
		t.Errorf("unexpected default base URL: %q", cfg.EmbedLLM.BaseURL)
	}
	if cfg.ChatLLM.Model != "gemma:2b" {
		t.Errorf("unexpected default model: %q", cfg.ChatLLM.Model)
	}
	if cfg.RAG.ChunkSize != 800 || cfg.RAG.ChunkOverlap != 100 {
		t.Errorf("unexpected default chunking: %d/%d", cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	}
	if cfg.RAG.TopK != 5 {
		t.Errorf("unexpected default top_k: %d", cfg.RAG.TopK)
	}
	if cfg.RAG.CollectionName != "resume_collection" {
		t.Errorf("unexpected default collection: %q", cfg.RAG.CollectionName)
	}
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
chat_llm:
  model: llama3
rag:
  chunk_size: 400
  top_k: 3
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.internal:11434")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ChatLLM.Model != "llama3" {
		t.Errorf("file value not applied: %q", cfg.ChatLLM.Model)
	}
	if cfg.RAG.ChunkSize != 400 || cfg.RAG.TopK != 3 {
		t.Errorf("file values not applied: %d/%d", cfg.RAG.ChunkSize, cfg.RAG.TopK)
	}
	if cfg.EmbedLLM.BaseURL != "http://ollama.internal:11434" || cfg.ChatLLM.BaseURL != "http://ollama.internal:11434" {
		t.Errorf("env override not applied: %q", cfg.ChatLLM.BaseURL)
	}
	// Untouched values still get defaults.
	if cfg.RAG.ChunkOverlap != 100 {
		t.Errorf("default not applied alongside file values: %d", cfg.RAG.ChunkOverlap)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("rag: ["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
