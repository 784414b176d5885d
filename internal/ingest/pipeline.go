// Package ingest turns policy files into stored, indexed chunks.
package ingest

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/embedding"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/index"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/store"
)

// Summary reports what one ingest run processed.
type Summary struct {
	Documents int `json:"documents"`
	Pages     int `json:"pages"`
	Chunks    int `json:"chunks"`
}

// Pipeline chunks documents, persists them and rebuilds the vector index.
// The embedder's vocabulary can depend on the corpus, so every ingest
// re-prepares it over all stored chunks and re-embeds everything; the index
// is rebuilt in chunk storage order, which keeps index size equal to chunk
// count and makes similarity ties resolve by ingest order.
//
// Rebuild holds mu exclusively for the whole prepare-embed-reindex sequence;
// query paths take the shared side through ReadLocker so they observe the
// embedder and index either entirely before or entirely after a rebuild.
type Pipeline struct {
	mu       sync.RWMutex
	store    store.Store
	index    index.Index
	embedder embedding.Embedder
	chunker  *Chunker
	loader   *Loader
}

func NewPipeline(st store.Store, idx index.Index, emb embedding.Embedder, chunker *Chunker, loader *Loader) *Pipeline {
	return &Pipeline{store: st, index: idx, embedder: emb, chunker: chunker, loader: loader}
}

// IngestPaths loads each path, persists documents and chunks, then rebuilds
// the index once at the end.
func (p *Pipeline) IngestPaths(ctx context.Context, paths []string) (*Summary, error) {
	summary := &Summary{}
	for _, path := range paths {
		pages, err := p.loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		n, err := p.storeDocument(ctx, pages.SourceFile, pages.Pages)
		if err != nil {
			return nil, err
		}
		summary.Documents++
		summary.Pages += len(pages.Pages)
		summary.Chunks += n
	}
	if summary.Documents == 0 {
		return nil, apperr.New(apperr.KindIngest, "no documents to ingest")
	}
	if err := p.Rebuild(ctx); err != nil {
		return nil, err
	}
	log.Printf("ingested %d documents (%d pages, %d chunks)", summary.Documents, summary.Pages, summary.Chunks)
	return summary, nil
}

// IngestDocument stores one already-loaded document and rebuilds the index.
func (p *Pipeline) IngestDocument(ctx context.Context, sourceFile string, pages []string) (*Summary, error) {
	n, err := p.storeDocument(ctx, sourceFile, pages)
	if err != nil {
		return nil, err
	}
	if err := p.Rebuild(ctx); err != nil {
		return nil, err
	}
	return &Summary{Documents: 1, Pages: len(pages), Chunks: n}, nil
}

func (p *Pipeline) storeDocument(ctx context.Context, sourceFile string, pages []string) (int, error) {
	doc := &model.Document{SourceFile: sourceFile, PageCount: len(pages)}
	doc.ID = uuid.New()

	var chunks []model.Chunk
	chunkIndex := 0
	for pageIdx, page := range pages {
		for _, text := range p.chunker.Split(page) {
			chunk := model.Chunk{
				DocumentID: doc.ID,
				SourceFile: sourceFile,
				PageNumber: pageIdx + 1,
				ChunkIndex: chunkIndex,
				Text:       text,
			}
			chunk.ID = uuid.New()
			chunks = append(chunks, chunk)
			chunkIndex++
		}
	}
	if len(chunks) == 0 {
		return 0, apperr.New(apperr.KindIngest, "no extractable text in %s", sourceFile)
	}
	doc.ChunkCount = len(chunks)

	if err := p.store.SaveDocument(ctx, doc); err != nil {
		return 0, apperr.Wrap(apperr.KindIngest, err, "failed to save document %s", sourceFile)
	}
	if err := p.store.SaveChunks(ctx, chunks); err != nil {
		return 0, apperr.Wrap(apperr.KindIngest, err, "failed to save chunks for %s", sourceFile)
	}
	return len(chunks), nil
}

// ReadLocker returns the lock readers must hold across an
// embed-search-resolve sequence so a concurrent Rebuild cannot be observed
// halfway through.
func (p *Pipeline) ReadLocker() sync.Locker {
	return p.mu.RLocker()
}

// Rebuild re-prepares the embedder over the full corpus, re-embeds every
// stored chunk and repopulates the index. An empty store leaves an empty
// index. Readers block for the duration.
func (p *Pipeline) Rebuild(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chunks, err := p.store.AllChunks(ctx)
	if err != nil {
		return apperr.Wrap(apperr.KindIngest, err, "failed to load chunks for rebuild")
	}
	if err := p.index.Clear(); err != nil {
		return apperr.Wrap(apperr.KindIngest, err, "failed to clear index")
	}
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	if err := p.embedder.Prepare(texts); err != nil {
		return apperr.Wrap(apperr.KindIngest, err, "failed to prepare embedder")
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return apperr.Wrap(apperr.KindIngest, err, "failed to embed chunks")
	}
	for i, c := range chunks {
		if err := p.index.Add(c.ID, vectors[i]); err != nil {
			return apperr.Wrap(apperr.KindIngest, err, "failed to index chunk %s", c.ID)
		}
	}
	log.Printf("index rebuilt with %d chunks (dimension %d)", len(chunks), p.embedder.Dimensions())
	return nil
}

// DiscoverFiles lists supported files directly under dir, sorted by name.
func (p *Pipeline) DiscoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindIngest, err, "failed to read data directory %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if p.loader.Supported(path) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}
