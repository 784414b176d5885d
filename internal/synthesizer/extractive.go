package synthesizer

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

// Extractive answers without a model call: it ranks sentences from the
// retrieved chunks by question-term overlap plus corpus word frequency and
// returns the best ones in their original order. Used when no generation
// endpoint is configured.
type Extractive struct {
	maxSentences int
	tokenPattern *regexp.Regexp
	sentSplitter *regexp.Regexp
}

func NewExtractive(maxSentences int) *Extractive {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	return &Extractive{
		maxSentences: maxSentences,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
		sentSplitter: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (e *Extractive) Synthesize(ctx context.Context, question string, scored []model.ScoredChunk) (string, error) {
	if len(scored) == 0 {
		return NoRelevantAnswer, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var text strings.Builder
	for _, sc := range scored {
		text.WriteString(sc.Chunk.Text)
		text.WriteString(" ")
	}
	sentences := e.sentSplitter.FindAllString(text.String(), -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text.String()), nil
	}

	freq := map[string]float64{}
	for _, sent := range sentences {
		for _, tok := range e.tokens(sent) {
			freq[tok]++
		}
	}
	maxF := 0.0
	for _, v := range freq {
		if v > maxF {
			maxF = v
		}
	}
	if maxF > 0 {
		for k, v := range freq {
			freq[k] = v / maxF
		}
	}

	qset := map[string]struct{}{}
	for _, tok := range e.tokens(question) {
		qset[tok] = struct{}{}
	}

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		toks := e.tokens(sent)
		sscore := 0.0
		for _, tok := range toks {
			sscore += freq[tok]
			// question-term matches dominate plain frequency
			if _, ok := qset[tok]; ok {
				sscore += 2
			}
		}
		if l := float64(len(toks)); l > 0 {
			sscore /= math.Sqrt(l)
		}
		scores[i] = pair{i, sscore}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	n := e.maxSentences
	if n > len(scores) {
		n = len(scores)
	}
	selected := make([]int, n)
	for i := 0; i < n; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)

	out := make([]string, 0, n)
	for _, idx := range selected {
		out = append(out, strings.TrimSpace(sentences[idx]))
	}
	return strings.Join(out, " "), nil
}

func (e *Extractive) tokens(text string) []string {
	return e.tokenPattern.FindAllString(strings.ToLower(text), -1)
}
