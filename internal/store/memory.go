package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

// Memory keeps documents and chunks in process memory. Reads run
// concurrently; ingest writes hold the lock until the store is consistent
// again.
type Memory struct {
	mu        sync.RWMutex
	documents []model.Document
	chunks    []model.Chunk
	chunkByID map[uuid.UUID]int
}

func NewMemory() *Memory {
	return &Memory{chunkByID: make(map[uuid.UUID]int)}
}

func (m *Memory) SaveDocument(ctx context.Context, doc *model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now()
	m.documents = append(m.documents, *doc)
	return nil
}

func (m *Memory) SaveChunks(ctx context.Context, chunks []model.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range chunks {
		if chunks[i].ID == uuid.Nil {
			chunks[i].ID = uuid.New()
		}
		m.chunkByID[chunks[i].ID] = len(m.chunks)
		m.chunks = append(m.chunks, chunks[i])
	}
	return nil
}

func (m *Memory) ChunksByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chunks := make([]model.Chunk, 0, len(ids))
	for _, id := range ids {
		pos, ok := m.chunkByID[id]
		if !ok {
			return nil, apperr.New(apperr.KindNotFound, "chunk %s not found", id)
		}
		chunks = append(chunks, m.chunks[pos])
	}
	return chunks, nil
}

func (m *Memory) AllChunks(ctx context.Context) ([]model.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chunks := make([]model.Chunk, len(m.chunks))
	copy(chunks, m.chunks)
	return chunks, nil
}

func (m *Memory) ListDocuments(ctx context.Context) ([]model.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := make([]model.Document, len(m.documents))
	copy(docs, m.documents)
	return docs, nil
}

func (m *Memory) CountChunks(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.chunks)), nil
}

func (m *Memory) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = nil
	m.chunks = nil
	m.chunkByID = make(map[uuid.UUID]int)
	return nil
}
