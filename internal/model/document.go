package model

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Document is one ingested policy file. Chunks carry the retrievable text;
// the document row tracks provenance and ingest stats.
type Document struct {
	BaseModel
	SourceFile string `gorm:"size:500;not null;index" json:"source_file"`
	PageCount  int    `gorm:"default:0" json:"page_count"`
	ChunkCount int    `gorm:"default:0" json:"chunk_count"`
}

func (Document) TableName() string {
	return "policy_documents"
}

// Chunk is the unit of retrieval: a bounded span of text from one page of a
// document. Chunks are immutable after ingest and replaced wholesale on
// re-ingest.
type Chunk struct {
	BaseModel
	DocumentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"document_id"`
	SourceFile string          `gorm:"size:500;not null" json:"source_file"`
	PageNumber int             `gorm:"not null" json:"page_number"` // 1-based
	ChunkIndex int             `gorm:"default:0" json:"chunk_index"`
	Text       string          `gorm:"type:text;not null" json:"text"`
	Embedding  pgvector.Vector `gorm:"type:vector(1536)" json:"-"`
}

func (Chunk) TableName() string {
	return "policy_chunks"
}

// ScoredChunk is a per-query pairing of a chunk with its relevance to the
// question, in [0,1].
type ScoredChunk struct {
	Chunk          Chunk   `json:"chunk"`
	RelevanceScore float64 `json:"relevance_score"`
}
