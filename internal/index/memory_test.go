package index

import (
	"testing"

	"github.com/google/uuid"
)

func TestMemorySearchEmptyIndex(t *testing.T) {
	m := NewMemory()
	for _, k := range []int{0, 1, 5} {
		hits, err := m.Search([]float32{1, 0, 0}, k)
		if err != nil {
			t.Fatalf("Search(k=%d) on empty index: %v", k, err)
		}
		if len(hits) != 0 {
			t.Errorf("Search(k=%d) = %d hits, want 0", k, len(hits))
		}
	}
}

func TestMemorySearchOrdering(t *testing.T) {
	m := NewMemory()
	far := uuid.New()
	near := uuid.New()
	mid := uuid.New()
	m.Add(far, []float32{0, 1, 0})
	m.Add(near, []float32{1, 0, 0})
	m.Add(mid, []float32{1, 1, 0})

	hits, err := m.Search([]float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].ChunkID != near || hits[1].ChunkID != mid || hits[2].ChunkID != far {
		t.Errorf("wrong order: %v", hits)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Similarity > hits[i-1].Similarity {
			t.Errorf("similarity not non-increasing at %d", i)
		}
	}
}

func TestMemorySearchTieBreaksByInsertionOrder(t *testing.T) {
	m := NewMemory()
	first := uuid.New()
	second := uuid.New()
	// identical vectors, identical similarity
	m.Add(first, []float32{1, 1})
	m.Add(second, []float32{1, 1})

	hits, err := m.Search([]float32{1, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].ChunkID != first {
		t.Errorf("earlier-inserted chunk must win the tie")
	}
}

func TestMemoryAddIsIdempotent(t *testing.T) {
	m := NewMemory()
	id := uuid.New()
	other := uuid.New()
	m.Add(id, []float32{0, 1})
	m.Add(other, []float32{0, 1})
	// replace id's vector; its insertion position must not change
	m.Add(id, []float32{1, 0})

	size, err := m.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != 2 {
		t.Fatalf("size = %d after duplicate add, want 2", size)
	}
	hits, err := m.Search([]float32{1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].ChunkID != id {
		t.Errorf("expected replaced vector to match query")
	}
}

func TestMemorySearchCapsAtK(t *testing.T) {
	m := NewMemory()
	for i := 0; i < 10; i++ {
		m.Add(uuid.New(), []float32{float32(i + 1), 1})
	}
	hits, err := m.Search([]float32{1, 0}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Errorf("expected 3 hits, got %d", len(hits))
	}
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory()
	m.Add(uuid.New(), []float32{1})
	if err := m.Clear(); err != nil {
		t.Fatal(err)
	}
	if size, _ := m.Size(); size != 0 {
		t.Errorf("size = %d after clear", size)
	}
	hits, err := m.Search([]float32{1}, 5)
	if err != nil || len(hits) != 0 {
		t.Errorf("expected empty search after clear, hits=%d err=%v", len(hits), err)
	}
}

func TestMemoryAddEmptyVector(t *testing.T) {
	m := NewMemory()
	if err := m.Add(uuid.New(), nil); err == nil {
		t.Fatal("expected error for empty vector")
	}
}

func TestMemoryZeroVectorSimilarity(t *testing.T) {
	m := NewMemory()
	id := uuid.New()
	m.Add(id, []float32{1, 0})
	hits, err := m.Search([]float32{0, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hits[0].Similarity != 0 {
		t.Errorf("zero query vector similarity = %f, want 0", hits[0].Similarity)
	}
}
