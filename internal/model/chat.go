package model

import "sort"

type ChatRequest struct {
	Question string `json:"question"`
}

// Source identifies where an answer came from, renderable by the client as
// file + page + score.
type Source struct {
	SourceFile     string  `json:"source_file"`
	PageNumber     int     `json:"page_number"`
	RelevanceScore float64 `json:"relevance_score"`
}

type ChatResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// BuildSources shapes retrieval results into the response source list:
// duplicates by (source_file, page_number) collapse to the highest score and
// the result is ordered by descending relevance.
func BuildSources(scored []ScoredChunk) []Source {
	type key struct {
		file string
		page int
	}
	best := make(map[key]float64, len(scored))
	order := make([]key, 0, len(scored))
	for _, sc := range scored {
		k := key{sc.Chunk.SourceFile, sc.Chunk.PageNumber}
		if prev, ok := best[k]; ok {
			if sc.RelevanceScore > prev {
				best[k] = sc.RelevanceScore
			}
			continue
		}
		best[k] = sc.RelevanceScore
		order = append(order, k)
	}

	sources := make([]Source, 0, len(order))
	for _, k := range order {
		sources = append(sources, Source{
			SourceFile:     k.file,
			PageNumber:     k.page,
			RelevanceScore: best[k],
		})
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].RelevanceScore > sources[j].RelevanceScore
	})
	return sources
}
