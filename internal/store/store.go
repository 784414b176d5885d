// Package store persists documents and their chunks.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

// Store is the document/chunk data layer. Chunks are written once at ingest
// and read concurrently at query time; Reset wipes everything for a full
// re-ingest.
type Store interface {
	SaveDocument(ctx context.Context, doc *model.Document) error
	SaveChunks(ctx context.Context, chunks []model.Chunk) error
	ChunksByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Chunk, error)
	AllChunks(ctx context.Context) ([]model.Chunk, error)
	ListDocuments(ctx context.Context) ([]model.Document, error)
	CountChunks(ctx context.Context) (int64, error)
	Reset(ctx context.Context) error
}
