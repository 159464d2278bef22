package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/codechronicle/core"
)

func TestHistoryRecordAndRecent(t *testing.T) {
	_, _, history, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { history.Close(); backend.Close() }()

	ctx := context.Background()
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		entry := &core.HistoryEntry{
			ID:          uuid.NewString(),
			Actor:       "anonymous",
			Query:       fmt.Sprintf("query %d", i),
			ResultCount: i,
			TopResults: []core.TopResult{
				{Code: "OBC", Year: "2024", SectionID: "3.1.8.1", Title: "Fire Separations"},
			},
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := history.Record(ctx, entry); err != nil {
			t.Fatalf("Failed to record entry %d: %v", i, err)
		}
	}

	recent, err := history.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Failed to list recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(recent))
	}

	// Most recent first
	if recent[0].Query != "query 4" || recent[2].Query != "query 2" {
		t.Fatalf("Expected newest-first ordering, got %q, %q, %q",
			recent[0].Query, recent[1].Query, recent[2].Query)
	}
	if len(recent[0].TopResults) != 1 || recent[0].TopResults[0].Code != "OBC" {
		t.Fatalf("Expected top results to survive round trip, got %+v", recent[0].TopResults)
	}
}

func TestHistoryRecordDefaultsTimestamp(t *testing.T) {
	_, _, history, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { history.Close(); backend.Close() }()

	ctx := context.Background()
	entry := &core.HistoryEntry{ID: uuid.NewString(), Query: "no timestamp"}
	if err := history.Record(ctx, entry); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	if entry.Timestamp.IsZero() {
		t.Fatal("Expected timestamp to be defaulted")
	}

	recent, err := history.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Query != "no timestamp" {
		t.Fatalf("Expected recorded entry back, got %+v", recent)
	}
}

func TestHistoryRecentZeroLimit(t *testing.T) {
	_, _, history, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { history.Close(); backend.Close() }()

	recent, err := history.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Failed to list recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("Expected no entries for zero limit, got %d", len(recent))
	}
}
