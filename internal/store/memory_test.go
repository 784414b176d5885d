package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/Dawsonf18/policy-ai-chatbot/internal/apperr"
	"github.com/Dawsonf18/policy-ai-chatbot/internal/model"
)

func TestMemorySaveAndResolveChunks(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	chunks := []model.Chunk{
		{SourceFile: "a.txt", PageNumber: 1, Text: "first"},
		{SourceFile: "a.txt", PageNumber: 2, Text: "second"},
	}
	if err := m.SaveChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	all, err := m.AllChunks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(all))
	}
	for _, c := range all {
		if c.ID == uuid.Nil {
			t.Error("chunk id not assigned on save")
		}
	}

	// resolution preserves the requested order
	got, err := m.ChunksByIDs(ctx, []uuid.UUID{all[1].ID, all[0].ID})
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Text != "second" || got[1].Text != "first" {
		t.Errorf("order not preserved: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestMemoryChunksByIDsUnknown(t *testing.T) {
	m := NewMemory()
	_, err := m.ChunksByIDs(context.Background(), []uuid.UUID{uuid.New()})
	if err == nil {
		t.Fatal("expected error for unknown chunk id")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %s, want %s", apperr.KindOf(err), apperr.KindNotFound)
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	doc := model.Document{SourceFile: "a.txt"}
	if err := m.SaveDocument(ctx, &doc); err != nil {
		t.Fatal(err)
	}
	if err := m.SaveChunks(ctx, []model.Chunk{{SourceFile: "a.txt", PageNumber: 1, Text: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := m.Reset(ctx); err != nil {
		t.Fatal(err)
	}

	count, _ := m.CountChunks(ctx)
	if count != 0 {
		t.Errorf("chunks after reset = %d", count)
	}
	docs, _ := m.ListDocuments(ctx)
	if len(docs) != 0 {
		t.Errorf("documents after reset = %d", len(docs))
	}
}
