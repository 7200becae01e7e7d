package chunker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/custodia-labs/passage/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.targetWords != DefaultTargetWords {
			t.Errorf("expected targetWords %d, got %d", DefaultTargetWords, p.targetWords)
		}
		if p.overlapWords != DefaultOverlapWords {
			t.Errorf("expected overlapWords %d, got %d", DefaultOverlapWords, p.overlapWords)
		}
	})

	t.Run("custom target", func(t *testing.T) {
		p := New(WithTargetWords(200))
		if p.targetWords != 200 {
			t.Errorf("expected targetWords 200, got %d", p.targetWords)
		}
	})

	t.Run("custom overlap", func(t *testing.T) {
		p := New(WithOverlapWords(25))
		if p.overlapWords != 25 {
			t.Errorf("expected overlapWords 25, got %d", p.overlapWords)
		}
	})

	t.Run("overlap exceeds target", func(t *testing.T) {
		p := New(WithTargetWords(100), WithOverlapWords(150))
		if p.overlapWords >= p.targetWords {
			t.Error("overlap should be reduced when it exceeds target size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithTargetWords(0), WithOverlapWords(-1))
		if p.targetWords != DefaultTargetWords {
			t.Errorf("expected default targetWords, got %d", p.targetWords)
		}
		if p.overlapWords != DefaultOverlapWords {
			t.Errorf("expected default overlapWords, got %d", p.overlapWords)
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestProcessor_Process_EmptyContent(t *testing.T) {
	p := New()
	for _, content := range []string{"", "   ", "\n\t  \n"} {
		doc := &domain.Document{ID: "test-doc", Content: content}

		chunks, err := p.Process(context.Background(), doc, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", content, len(chunks))
		}
	}
}

func TestProcessor_Process_ShortContent(t *testing.T) {
	p := New(WithTargetWords(100), WithOverlapWords(20))
	doc := &domain.Document{
		ID:      "test-doc",
		Content: "This is a small piece of content.",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for short content, got %d", len(chunks))
	}

	chunk := chunks[0]
	if chunk.ID != "test-doc:0" {
		t.Errorf("unexpected chunk ID: %s", chunk.ID)
	}
	if chunk.StartOffset != 0 || chunk.EndOffset != 7 {
		t.Errorf("unexpected offsets: [%d, %d)", chunk.StartOffset, chunk.EndOffset)
	}
	if chunk.Content != "This is a small piece of content." {
		t.Errorf("unexpected content: %q", chunk.Content)
	}
}

func TestProcessor_Process_Overlap(t *testing.T) {
	p := New(WithTargetWords(10), WithOverlapWords(3))

	words := make([]string, 25)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	doc := &domain.Document{ID: "doc", Content: strings.Join(words, " ")}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// step = 7, windows: [0,10) [7,17) [14,24) [21,25)
	if len(chunks) != 4 {
		t.Fatalf("expected 4 chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		if cur.StartOffset != prev.StartOffset+7 {
			t.Errorf("chunk %d: expected start %d, got %d", i, prev.StartOffset+7, cur.StartOffset)
		}
		overlap := prev.EndOffset - cur.StartOffset
		if overlap != 3 && prev.EndOffset == prev.StartOffset+10 {
			t.Errorf("chunk %d: expected 3 words of overlap, got %d", i, overlap)
		}
		if cur.Position != i {
			t.Errorf("chunk %d: expected position %d, got %d", i, i, cur.Position)
		}
	}

	if last := chunks[len(chunks)-1]; last.EndOffset != 25 {
		t.Errorf("expected final chunk to end at 25, got %d", last.EndOffset)
	}
}

func TestProcessor_Process_NeverSplitsWords(t *testing.T) {
	p := New(WithTargetWords(5), WithOverlapWords(1))
	doc := &domain.Document{
		ID:      "doc",
		Content: "alpha beta gamma delta epsilon zeta eta theta iota kappa",
	}

	chunks, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	valid := map[string]bool{}
	for _, w := range strings.Fields(doc.Content) {
		valid[w] = true
	}
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk.Content) {
			if !valid[w] {
				t.Errorf("chunk contains fragment %q not present in the source", w)
			}
		}
	}
}

func TestProcessor_Process_Deterministic(t *testing.T) {
	p := New(WithTargetWords(8), WithOverlapWords(2))
	doc := &domain.Document{
		ID:      "doc",
		Content: strings.Repeat("the quick brown fox jumps over the lazy dog ", 10),
	}

	first, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.Process(context.Background(), doc, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d: IDs differ: %s vs %s", i, first[i].ID, second[i].ID)
		}
		if first[i].Content != second[i].Content {
			t.Errorf("chunk %d: content differs", i)
		}
	}
}

func TestProcessor_Process_IgnoresInputChunks(t *testing.T) {
	p := New()
	doc := &domain.Document{ID: "doc", Content: "one two three"}

	existing := []domain.Chunk{{ID: "stale", Content: "stale"}}
	chunks, err := p.Process(context.Background(), doc, existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 || chunks[0].ID != "doc:0" {
		t.Errorf("expected fresh chunks from document content, got %+v", chunks)
	}
}
