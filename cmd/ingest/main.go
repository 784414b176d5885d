// Command ingest loads policy documents into the postgres backend so the
// server can search them. The memory backend is ingested in-process by the
// server instead; this command refuses to run against it because the result
// would vanish with the process.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/config"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/database"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/embedding"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/ingest"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/store"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	dir := flag.String("dir", cfg.DataDir, "directory of policy files to ingest")
	reset := flag.Bool("reset", false, "drop existing documents before ingesting")
	flag.Parse()

	if cfg.StoreBackend != "postgres" {
		log.Fatalf("ingest requires STORE_BACKEND=postgres; the %q backend is populated by the server itself", cfg.StoreBackend)
	}

	var emb embedding.Embedder
	switch cfg.Embedder {
	case "openai":
		emb = embedding.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.EmbeddingDimensions)
	default:
		emb = embedding.NewTFIDF()
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	pg := store.NewPostgres(db)

	chunker := ingest.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	pipeline := ingest.NewPipeline(pg, pg, emb, chunker, ingest.NewLoader())

	ctx := context.Background()

	if *reset {
		if err := pg.Reset(ctx); err != nil {
			log.Fatalf("Failed to reset store: %v", err)
		}
		log.Printf("existing documents dropped")
	}

	paths, err := pipeline.DiscoverFiles(*dir)
	if err != nil {
		log.Fatalf("Failed to scan %s: %v", *dir, err)
	}
	if len(paths) == 0 {
		log.Fatalf("No supported files (.txt, .md, .pdf) found in %s", *dir)
	}

	summary, err := pipeline.IngestPaths(ctx, paths)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	log.Printf("done: %d documents, %d pages, %d chunks", summary.Documents, summary.Pages, summary.Chunks)
}
