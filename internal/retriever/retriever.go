// Package retriever turns a question into ranked, resolved chunks.
package retriever

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/embedding"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/index"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/store"
)

type Retriever struct {
	embedder embedding.Embedder
	index    index.Index
	store    store.Store
	guard    sync.Locker
}

// New builds a Retriever. guard, when non-nil, is held shared for the whole
// embed-search-resolve sequence; pass the ingest pipeline's ReadLocker so a
// concurrent rebuild is never observed halfway through.
func New(emb embedding.Embedder, idx index.Index, st store.Store, guard sync.Locker) *Retriever {
	return &Retriever{embedder: emb, index: idx, store: st, guard: guard}
}

// Retrieve embeds the question, searches the index for the k nearest chunks
// and resolves them to full records with relevance scores. k <= 0 returns an
// empty result without touching the index.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]model.ScoredChunk, error) {
	if k <= 0 {
		return []model.ScoredChunk{}, nil
	}
	if r.guard != nil {
		r.guard.Lock()
		defer r.guard.Unlock()
	}

	size, err := r.index.Size()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, err, "index unavailable")
	}
	// Nothing ingested yet: skip the embedding round-trip entirely.
	if size == 0 {
		return []model.ScoredChunk{}, nil
	}

	vector, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, err, "failed to embed question")
	}

	hits, err := r.index.Search(vector, k)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, err, "index search failed")
	}
	if len(hits) == 0 {
		return []model.ScoredChunk{}, nil
	}

	ids := make([]uuid.UUID, len(hits))
	for i, h := range hits {
		ids[i] = h.ChunkID
	}
	chunks, err := r.store.ChunksByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindRetrieval, err, "failed to resolve chunks")
	}

	scored := make([]model.ScoredChunk, len(hits))
	for i, h := range hits {
		scored[i] = model.ScoredChunk{
			Chunk:          chunks[i],
			RelevanceScore: normalizeScore(h.Similarity),
		}
	}
	return scored, nil
}

// normalizeScore maps cosine similarity from [-1,1] into the response score
// range [0,1] via (cos+1)/2. The mapping is monotone, so ranking order is
// exactly similarity order.
func normalizeScore(similarity float64) float64 {
	score := (similarity + 1) / 2
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
