package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/config"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/database"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/embedding"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/handler"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/index"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/ingest"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/retriever"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/service"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/store"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/synthesizer"
)

func main() {
	// Load .env file if exists
	godotenv.Load()

	cfg := config.Load()

	var emb embedding.Embedder
	switch cfg.Embedder {
	case "openai":
		emb = embedding.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
	default:
		emb = embedding.NewTFIDF()
	}

	var st store.Store
	var idx index.Index
	switch cfg.StoreBackend {
	case "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		pg := store.NewPostgres(db)
		st, idx = pg, pg
	default:
		st = store.NewMemory()
		idx = index.NewMemory()
	}

	chunker := ingest.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	pipeline := ingest.NewPipeline(st, idx, emb, chunker, ingest.NewLoader())

	// The memory backend starts empty, so bootstrap it from the data
	// directory when one is present.
	if cfg.StoreBackend != "postgres" {
		if info, err := os.Stat(cfg.DataDir); err == nil && info.IsDir() {
			paths, err := pipeline.DiscoverFiles(cfg.DataDir)
			if err != nil {
				log.Fatalf("Failed to scan data directory: %v", err)
			}
			if len(paths) > 0 {
				if _, err := pipeline.IngestPaths(context.Background(), paths); err != nil {
					log.Fatalf("Failed to ingest %s: %v", cfg.DataDir, err)
				}
			}
		}
	}

	var synth synthesizer.Synthesizer
	switch cfg.Synthesizer {
	case "openai":
		synth = synthesizer.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel)
	default:
		synth = synthesizer.NewExtractive(cfg.TopK)
	}

	chatSvc := service.NewChatService(retriever.New(emb, idx, st, pipeline.ReadLocker()), synth, cfg.TopK)

	r := handler.SetupRouter(cfg, handler.Deps{
		ChatService: chatSvc,
		Pipeline:    pipeline,
		Store:       st,
		Index:       idx,
	})

	addr := cfg.Host + ":" + cfg.Port
	log.Printf("Policy Chat API starting on %s (store=%s embedder=%s synthesizer=%s)",
		addr, cfg.StoreBackend, cfg.Embedder, cfg.Synthesizer)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
