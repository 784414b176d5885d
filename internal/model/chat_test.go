package model

import "testing"

func sc(file string, page int, score float64) ScoredChunk {
	return ScoredChunk{
		Chunk:          Chunk{SourceFile: file, PageNumber: page, Text: "text"},
		RelevanceScore: score,
	}
}

func TestBuildSourcesSortsDescending(t *testing.T) {
	sources := BuildSources([]ScoredChunk{
		sc("a.pdf", 1, 0.4),
		sc("b.pdf", 2, 0.9),
		sc("c.pdf", 3, 0.7),
	})
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	for i := 1; i < len(sources); i++ {
		if sources[i].RelevanceScore > sources[i-1].RelevanceScore {
			t.Errorf("sources not in descending order at %d: %v", i, sources)
		}
	}
	if sources[0].SourceFile != "b.pdf" {
		t.Errorf("top source = %s, want b.pdf", sources[0].SourceFile)
	}
}

func TestBuildSourcesDeduplicatesKeepingHighest(t *testing.T) {
	sources := BuildSources([]ScoredChunk{
		sc("handbook.pdf", 4, 0.6),
		sc("handbook.pdf", 4, 0.9),
		sc("handbook.pdf", 5, 0.7),
	})
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources after dedup, got %d", len(sources))
	}
	seen := map[[2]any]bool{}
	for _, s := range sources {
		k := [2]any{s.SourceFile, s.PageNumber}
		if seen[k] {
			t.Fatalf("duplicate source %v", k)
		}
		seen[k] = true
	}
	if sources[0].PageNumber != 4 || sources[0].RelevanceScore != 0.9 {
		t.Errorf("expected page 4 with score 0.9 first, got %+v", sources[0])
	}
}

func TestBuildSourcesEmpty(t *testing.T) {
	sources := BuildSources(nil)
	if sources == nil || len(sources) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", sources)
	}
}
