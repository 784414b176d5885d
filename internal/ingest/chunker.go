package ingest

import (
	"strings"
	"unicode"
)

// Chunker splits page text into fixed-size windows with overlap between
// consecutive chunks. Sizes are in runes so multibyte text chunks cleanly.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split returns the chunk texts for one page, in order. Whitespace-only
// input yields no chunks. Windows prefer to break at a space near the end so
// words are not cut mid-token.
func (c *Chunker) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []string
	step := c.size - c.overlap
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else if cut := lastSpace(runes, start+step, end); cut > start {
			end = cut
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// lastSpace finds the last whitespace rune in runes[min:max), or -1.
func lastSpace(runes []rune, min, max int) int {
	for i := max - 1; i >= min; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
