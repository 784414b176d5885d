package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	idx "github.com/Dawsonf18/policy-ai-chatbot/internal/index"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

// Postgres persists documents and chunks through gorm and serves similarity
// search through pgvector cosine distance, so it implements both Store and
// index.Index.
type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) SaveDocument(ctx context.Context, doc *model.Document) error {
	return p.db.WithContext(ctx).Create(doc).Error
}

func (p *Postgres) SaveChunks(ctx context.Context, chunks []model.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Create(&chunks).Error
}

func (p *Postgres) ChunksByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Chunk, error) {
	var chunks []model.Chunk
	if err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&chunks).Error; err != nil {
		return nil, err
	}
	// Preserve the caller's (ranked) ordering.
	byID := make(map[uuid.UUID]model.Chunk, len(chunks))
	for _, c := range chunks {
		byID[c.ID] = c
	}
	ordered := make([]model.Chunk, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, apperr.New(apperr.KindNotFound, "chunk %s not found", id)
		}
		ordered = append(ordered, c)
	}
	return ordered, nil
}

func (p *Postgres) AllChunks(ctx context.Context) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := p.db.WithContext(ctx).
		Order("created_at ASC, chunk_index ASC").
		Find(&chunks).Error
	return chunks, err
}

func (p *Postgres) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	err := p.db.WithContext(ctx).Order("created_at ASC").Find(&docs).Error
	return docs, err
}

func (p *Postgres) CountChunks(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&model.Chunk{}).Count(&count).Error
	return count, err
}

func (p *Postgres) Reset(ctx context.Context) error {
	if err := p.db.WithContext(ctx).Where("1 = 1").Delete(&model.Chunk{}).Error; err != nil {
		return err
	}
	return p.db.WithContext(ctx).Where("1 = 1").Delete(&model.Document{}).Error
}

// Add stores the chunk's embedding; searching reads it back through the
// pgvector cosine operator.
func (p *Postgres) Add(chunkID uuid.UUID, vector []float32) error {
	res := p.db.Model(&model.Chunk{}).
		Where("id = ?", chunkID).
		Update("embedding", pgvector.NewVector(vector))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("chunk %s not found", chunkID)
	}
	return nil
}

func (p *Postgres) Search(vector []float32, k int) ([]idx.Hit, error) {
	if k <= 0 {
		return []idx.Hit{}, nil
	}

	var rows []struct {
		ID       uuid.UUID `gorm:"column:id"`
		Distance float64   `gorm:"column:distance"`
	}
	err := p.db.Table("policy_chunks").
		Select("id, embedding <=> ? AS distance", pgvector.NewVector(vector)).
		Where("embedding IS NOT NULL").
		Order("distance ASC, created_at ASC").
		Limit(k).
		Scan(&rows).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []idx.Hit{}, nil
		}
		return nil, err
	}

	hits := make([]idx.Hit, 0, len(rows))
	for _, r := range rows {
		// cosine distance -> cosine similarity
		hits = append(hits, idx.Hit{ChunkID: r.ID, Similarity: 1 - r.Distance})
	}
	return hits, nil
}

// Clear drops stored embeddings without touching chunk text; the following
// rebuild writes fresh vectors through Add.
func (p *Postgres) Clear() error {
	return p.db.Model(&model.Chunk{}).
		Where("embedding IS NOT NULL").
		Update("embedding", nil).Error
}

func (p *Postgres) Size() (int, error) {
	var count int64
	err := p.db.Model(&model.Chunk{}).Where("embedding IS NOT NULL").Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
