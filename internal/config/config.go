package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	ChatLLM  LLMConfig      `yaml:"chat_llm"`
	RAG      RAGConfig      `yaml:"rag"`
}

// LLMConfig addresses one model role on the model service. Provider is
// "ollama" (default) or "openai" for any OpenAI-compatible endpoint.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

// DatabaseConfig selects the optional Postgres/pgvector backend. The
// embedded chromem store is used when DSN is empty.
type DatabaseConfig struct {
	DSN   string `yaml:"dsn"`
	Debug bool   `yaml:"debug"`
}

type RAGConfig struct {
	DBPath         string  `yaml:"db_path"`
	CollectionName string  `yaml:"collection_name"`
	ChunkSize      int     `yaml:"chunk_size"`
	ChunkOverlap   int     `yaml:"chunk_overlap"`
	TopK           int     `yaml:"top_k"`
	Temperature    float64 `yaml:"temperature"`
}

const (
	defaultBaseURL        = "http://localhost:11434"
	defaultModel          = "gemma:2b"
	defaultDBPath         = "./resume_chroma_db"
	defaultCollectionName = "resume_collection"
	defaultChunkSize      = 800
	defaultChunkOverlap   = 100
	defaultTopK           = 5
	defaultTemperature    = 0.1
)

// LoadConfig reads the yaml config file and applies defaults and
// environment overrides. A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.EmbedLLM.BaseURL == "" {
		c.EmbedLLM.BaseURL = defaultBaseURL
	}
	if c.EmbedLLM.Model == "" {
		c.EmbedLLM.Model = defaultModel
	}
	if c.ChatLLM.BaseURL == "" {
		c.ChatLLM.BaseURL = defaultBaseURL
	}
	if c.ChatLLM.Model == "" {
		c.ChatLLM.Model = defaultModel
	}
	if c.RAG.DBPath == "" {
		c.RAG.DBPath = defaultDBPath
	}
	if c.RAG.CollectionName == "" {
		c.RAG.CollectionName = defaultCollectionName
	}
	if c.RAG.ChunkSize == 0 {
		c.RAG.ChunkSize = defaultChunkSize
	}
	if c.RAG.ChunkOverlap == 0 {
		c.RAG.ChunkOverlap = defaultChunkOverlap
	}
	if c.RAG.TopK == 0 {
		c.RAG.TopK = defaultTopK
	}
	if c.RAG.Temperature == 0 {
		c.RAG.Temperature = defaultTemperature
	}
}

// applyEnv lets the environment override the file, so the tool can point
// at another Ollama host or model without editing the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.EmbedLLM.BaseURL = v
		c.ChatLLM.BaseURL = v
	}
	if v := os.Getenv("RESUME_RAG_MODEL"); v != "" {
		c.EmbedLLM.Model = v
		c.ChatLLM.Model = v
	}
	if v := os.Getenv("RESUME_RAG_DB_PATH"); v != "" {
		c.RAG.DBPath = v
	}
	if v := os.Getenv("RESUME_RAG_COLLECTION"); v != "" {
		c.RAG.CollectionName = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("RESUME_RAG_TOP_K"); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			c.RAG.TopK = k
		}
	}
}
