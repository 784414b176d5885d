// Package index provides nearest-neighbour search over chunk vectors.
package index

import "github.com/google/uuid"

// Hit is one search result: a chunk id with its raw cosine similarity to the
// query vector, in [-1,1].
type Hit struct {
	ChunkID    uuid.UUID
	Similarity float64
}

// Index maps chunk ids to vectors and answers top-k similarity queries.
// Add with an existing id replaces the stored vector. Search on an empty
// index returns an empty slice. Clear drops every vector ahead of a rebuild.
// Size reports the number of indexed vectors; backends that cannot answer
// return the underlying failure rather than a guessed count.
type Index interface {
	Add(chunkID uuid.UUID, vector []float32) error
	Search(vector []float32, k int) ([]Hit, error)
	Clear() error
	Size() (int, error)
}
