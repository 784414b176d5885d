// Package synthesizer produces grounded answers from retrieved chunks.
// Implementations never answer from outside the supplied chunk texts.
package synthesizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

// NoRelevantAnswer is returned whenever retrieval found nothing usable.
const NoRelevantAnswer = "I couldn't find anything relevant in the policy documents."

type Synthesizer interface {
	Synthesize(ctx context.Context, question string, scored []model.ScoredChunk) (string, error)
}

// buildContext renders retrieved chunks as labelled source blocks, the shape
// the generation prompt expects.
func buildContext(scored []model.ScoredChunk) string {
	blocks := make([]string, len(scored))
	for i, sc := range scored {
		blocks[i] = fmt.Sprintf("[Source: %s, Page: %d]\n%s",
			sc.Chunk.SourceFile, sc.Chunk.PageNumber, sc.Chunk.Text)
	}
	return strings.Join(blocks, "\n\n")
}
