package index

import (
	"errors"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type entry struct {
	id  uuid.UUID
	vec []float32
}

// Memory is a brute-force cosine index. Ties in similarity resolve to the
// earlier-inserted chunk; replacing a vector keeps its original position.
type Memory struct {
	mu      sync.RWMutex
	entries []entry
	byID    map[uuid.UUID]int
}

func NewMemory() *Memory {
	return &Memory{byID: make(map[uuid.UUID]int)}
}

func (m *Memory) Add(chunkID uuid.UUID, vector []float32) error {
	if len(vector) == 0 {
		return errors.New("empty vector")
	}
	vec := make([]float32, len(vector))
	copy(vec, vector)

	m.mu.Lock()
	defer m.mu.Unlock()
	if pos, ok := m.byID[chunkID]; ok {
		m.entries[pos].vec = vec
		return nil
	}
	m.byID[chunkID] = len(m.entries)
	m.entries = append(m.entries, entry{id: chunkID, vec: vec})
	return nil
}

func (m *Memory) Search(vector []float32, k int) ([]Hit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if k <= 0 || len(m.entries) == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, len(m.entries))
	for i, e := range m.entries {
		hits[i] = Hit{ChunkID: e.id, Similarity: cosine(e.vec, vector)}
	}
	// Stable sort preserves insertion order among equal similarities.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.byID = make(map[uuid.UUID]int)
	return nil
}

func (m *Memory) Size() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
