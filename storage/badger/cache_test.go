package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage"
)

func TestQueryCacheRoundTrip(t *testing.T) {
	_, cache, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { cache.Close(); backend.Close() }()

	ctx := context.Background()
	queryHash := core.IDFromContent("fire doors in ontario")
	promptHash := core.IDFromContent("prompt-v1")

	// Absent key returns nil, no error
	cached, err := cache.Get(ctx, queryHash, promptHash)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if cached != nil {
		t.Fatal("Expected nil for absent key")
	}

	value := &core.CachedQuery{
		RawQuery: "fire doors in ontario",
		Params: core.ParsedQuery{
			Date:     time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			Keywords: []string{"fire", "doors"},
			Province: "ON",
		},
		Model:     "gpt-4o-mini",
		CreatedAt: time.Now().UTC(),
	}
	if err := cache.Put(ctx, queryHash, promptHash, value); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	cached, err = cache.Get(ctx, queryHash, promptHash)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if cached == nil {
		t.Fatal("Expected cached value")
	}
	if cached.RawQuery != value.RawQuery || cached.Model != value.Model {
		t.Fatalf("Round trip mismatch: %+v", cached)
	}
	if len(cached.Params.Keywords) != 2 || cached.Params.Keywords[0] != "fire" {
		t.Fatalf("Expected keywords to survive round trip, got %v", cached.Params.Keywords)
	}
	if !cached.Params.Date.Equal(value.Params.Date) {
		t.Fatalf("Expected date %v, got %v", value.Params.Date, cached.Params.Date)
	}

	// Different prompt hash is a different key
	cached, err = cache.Get(ctx, queryHash, core.IDFromContent("prompt-v2"))
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if cached != nil {
		t.Fatal("Expected nil for different prompt hash")
	}
}

func TestIncrementHits(t *testing.T) {
	_, cache, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { cache.Close(); backend.Close() }()

	ctx := context.Background()
	queryHash := core.IDFromContent("exit widths")
	promptHash := core.IDFromContent("prompt-v1")

	_, err = cache.IncrementHits(ctx, queryHash, promptHash)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for absent key, got %v", err)
	}

	value := &core.CachedQuery{RawQuery: "exit widths", CreatedAt: time.Now().UTC()}
	if err := cache.Put(ctx, queryHash, promptHash, value); err != nil {
		t.Fatalf("Failed to put: %v", err)
	}

	for want := int64(1); want <= 3; want++ {
		hits, err := cache.IncrementHits(ctx, queryHash, promptHash)
		if err != nil {
			t.Fatalf("Failed to increment: %v", err)
		}
		if hits != want {
			t.Fatalf("Expected %d hits, got %d", want, hits)
		}
	}

	cached, err := cache.Get(ctx, queryHash, promptHash)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if cached.Hits != 3 {
		t.Fatalf("Expected persisted hit count 3, got %d", cached.Hits)
	}
}
