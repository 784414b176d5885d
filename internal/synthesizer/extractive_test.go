package synthesizer

import (
	"context"
	"strings"
	"testing"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

func scoredChunk(file string, page int, text string, score float64) model.ScoredChunk {
	return model.ScoredChunk{
		Chunk:          model.Chunk{SourceFile: file, PageNumber: page, Text: text},
		RelevanceScore: score,
	}
}

func TestExtractiveEmptyInput(t *testing.T) {
	s := NewExtractive(3)
	answer, err := s.Synthesize(context.Background(), "anything", nil)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if answer != NoRelevantAnswer {
		t.Errorf("answer = %q, want the fixed no-relevant-content message", answer)
	}
}

func TestExtractivePrefersQuestionTerms(t *testing.T) {
	s := NewExtractive(1)
	scored := []model.ScoredChunk{
		scoredChunk("handbook.pdf", 4,
			"The cafeteria opens at eight. Employees receive 15 vacation days per year. Parking is unassigned.",
			0.9),
	}
	answer, err := s.Synthesize(context.Background(), "how many vacation days do employees get?", scored)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !strings.Contains(answer, "15") {
		t.Errorf("answer %q should contain the vacation figure", answer)
	}
	if !strings.Contains(answer, "vacation") {
		t.Errorf("answer %q should mention vacation", answer)
	}
}

func TestExtractiveUsesOnlySuppliedChunks(t *testing.T) {
	s := NewExtractive(5)
	scored := []model.ScoredChunk{
		scoredChunk("a.txt", 1, "Dogs are allowed in the office on Fridays.", 0.8),
	}
	answer, err := s.Synthesize(context.Background(), "what is the pet policy?", scored)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	// Every sentence in the answer must come from the chunk text.
	if !strings.Contains("Dogs are allowed in the office on Fridays.", strings.TrimSpace(answer)) {
		t.Errorf("answer %q not grounded in chunk text", answer)
	}
}

func TestExtractiveCancelledContext(t *testing.T) {
	s := NewExtractive(3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Synthesize(ctx, "q", []model.ScoredChunk{scoredChunk("a.txt", 1, "Some text.", 0.5)})
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestBuildContextLabelsSources(t *testing.T) {
	ctx := buildContext([]model.ScoredChunk{
		scoredChunk("handbook.pdf", 4, "Vacation text.", 0.9),
		scoredChunk("benefits.pdf", 2, "Insurance text.", 0.7),
	})
	if !strings.Contains(ctx, "[Source: handbook.pdf, Page: 4]") {
		t.Errorf("context missing first source label:\n%s", ctx)
	}
	if !strings.Contains(ctx, "[Source: benefits.pdf, Page: 2]") {
		t.Errorf("context missing second source label:\n%s", ctx)
	}
	if !strings.Contains(ctx, "Vacation text.") || !strings.Contains(ctx, "Insurance text.") {
		t.Errorf("context missing chunk text:\n%s", ctx)
	}
}
