// Package embedding converts text into fixed-dimension vectors for
// similarity comparison. Embedding the same text twice yields identical
// vectors for every implementation.
package embedding

import "context"

// Embedder turns text into a numeric vector. Implementations may require a
// preparation pass over the corpus before they can embed (local embedders
// derive their vocabulary from it); remote embedders treat Prepare as a
// no-op.
type Embedder interface {
	Prepare(corpus []string) error
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}
