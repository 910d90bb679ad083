package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"resume-rag/internal/chromemdb"
	"resume-rag/internal/config"
	"resume-rag/internal/db"
	"resume-rag/internal/embedding"
	"resume-rag/internal/helper"
	"resume-rag/internal/llmservice"
	"resume-rag/internal/models"
	"resume-rag/internal/parser"
	"resume-rag/internal/prompt"
	"resume-rag/internal/rag"
	"resume-rag/internal/session"
	"resume-rag/internal/splitter"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	_ = godotenv.Load()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	files := flag.String("file", "", "Comma-separated resume files to ingest")
	query := flag.String("query", "", "Question to answer against the ingested resumes")
	mode := flag.String("mode", models.ModeGeneral, "Analysis mode: general, technical, experience or match")
	quick := flag.String("quick", "", "Quick analysis shortcut (e.g. Summary, Experience)")
	chat := flag.Bool("chat", false, "Interactive chat over the ingested resumes")
	clearDB := flag.Bool("clear", false, "Clear the vector database")
	dryRun := flag.Bool("dry-run", false, "Parse and chunk only, do not embed or store")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	ctx := context.Background()

	if *clearDB {
		clearStore(ctx, cfg)
		return
	}

	if !prompt.ValidMode(*mode) {
		log.Warn().Str("mode", *mode).Msg("Unknown analysis mode, falling back to general")
	}

	if *dryRun {
		if *files == "" {
			log.Fatal().Msg("-dry-run needs -file")
		}
		dryRunFiles(strings.Split(*files, ","), cfg)
		return
	}

	if *quick != "" {
		question, ok := models.QuickQuestions[*quick]
		if !ok {
			log.Fatal().Str("quick", *quick).Strs("available", quickNames()).Msg("Unknown quick analysis")
		}
		*query = question
	}

	if *files == "" && *query == "" && !*chat {
		flag.Usage()
		os.Exit(2)
	}

	store, closeStore := newStore(ctx, cfg)
	defer closeStore()

	embedder, err := embedding.NewEmbedder(&cfg.EmbedLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}
	model, err := llmservice.NewModel(&cfg.ChatLLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chat model")
	}

	sess := session.New()
	sess.SetMode(*mode)
	engine := rag.NewRAG(store, embedder, model, cfg)

	if *files != "" {
		ingested, err := engine.Ingest(ctx, sess, strings.Split(*files, ","))
		if err != nil {
			log.Fatal().Err(err).Msg("Error ingesting files")
		}
		log.Info().Strs("files", ingested).Msg("Ingested resumes")
	}

	if *query != "" {
		askOnce(ctx, engine, sess, *query)
	}

	if *chat {
		runChat(ctx, engine, sess)
	}
}

func newStore(ctx context.Context, cfg *config.Config) (rag.VectorStore, func()) {
	if cfg.Database.DSN != "" {
		dbClient, err := db.ConnectDB(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		bunDB := db.NewDB(dbClient, cfg.Database.Debug)
		store, err := db.NewStore(ctx, bunDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing database store")
		}
		return store, func() { bunDB.Close() }
	}

	if err := helper.CreateFolder(cfg.RAG.DBPath); err != nil {
		log.Fatal().Err(err).Msg("Error creating database folder")
	}
	store, err := chromemdb.NewStore(cfg.RAG.DBPath, cfg.RAG.CollectionName, false)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector database")
	}
	return store, func() {}
}

func clearStore(ctx context.Context, cfg *config.Config) {
	store, closeStore := newStore(ctx, cfg)
	defer closeStore()
	if err := store.Clear(ctx); err != nil {
		log.Fatal().Err(err).Msg("Error clearing vector database")
	}
	log.Info().Msg("Vector database cleared")
}

// dryRunFiles parses and chunks without touching the model or the store.
func dryRunFiles(paths []string, cfg *config.Config) {
	split := splitter.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap)
	for _, path := range paths {
		segments, err := parser.Parse(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Skipping file")
			continue
		}
		chunks, err := split.Split(segments)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("Error chunking file")
			continue
		}
		log.Info().Str("file", path).Int("segments", len(segments)).Int("chunks", len(chunks)).Msg("Parsed file")
		helper.PrettyPrint(chunks)
	}
}

func askOnce(ctx context.Context, engine *rag.RAG, sess *session.Session, question string) {
	response, err := engine.Query(ctx, sess, question)
	if err != nil {
		reportQueryError(err)
		os.Exit(1)
	}
	printResponse(response)
}

func runChat(ctx context.Context, engine *rag.RAG, sess *session.Session) {
	fmt.Printf("Analysis mode: %s. Commands: /mode <m>, /reset, /quit\n", sess.Mode())
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case line == "/quit":
			return
		case line == "/reset":
			sess.Reset()
			fmt.Println("Session cleared.")
		case strings.HasPrefix(line, "/mode "):
			m := strings.TrimSpace(strings.TrimPrefix(line, "/mode "))
			sess.SetMode(m)
			fmt.Printf("Analysis mode: %s\n", m)
		default:
			response, err := engine.Query(ctx, sess, line)
			if err != nil {
				// Per-question failures keep the session alive.
				reportQueryError(err)
				break
			}
			printResponse(response)
		}
		fmt.Print("> ")
	}
}

func reportQueryError(err error) {
	var modelErr *rag.ModelError
	switch {
	case errors.Is(err, rag.ErrNoContext):
		fmt.Println("Please upload documents first.")
	case errors.As(err, &modelErr):
		log.Error().Err(err).Msg("Model unavailable, please retry")
	default:
		log.Error().Err(err).Msg("Error answering question")
	}
}

func printResponse(response *rag.Response) {
	fmt.Printf("\n%s\n\n", response.Content)
	fmt.Println("Sources:")
	for _, src := range response.Sources {
		excerpt := src.Content
		if len(excerpt) > 400 {
			excerpt = excerpt[:400] + "..."
		}
		fmt.Printf("- %s (page %d, similarity %.3f)\n  %s\n", src.Source, src.Page, src.Similarity, strings.ReplaceAll(excerpt, "\n", " "))
	}
	fmt.Println()
}

func quickNames() []string {
	names := make([]string, 0, len(models.QuickQuestions))
	for name := range models.QuickQuestions {
		names = append(names, name)
	}
	return names
}
