package storage

import (
	"context"
	"strings"

	"github.com/poiesic/codechronicle/core"
)

// SectionCriteria is the predicate contract for FindSections. A section is a
// candidate when ANY of the clauses matches (the clauses are OR-ed), mirroring
// how the search engine builds its candidate set: the full query as an id
// substring, individual terms as title substrings, expanded terms as keyword
// overlap, and section references as id substrings.
//
// All matching is case-insensitive; keyword overlap expects lower-cased terms.
type SectionCriteria struct {
	IDSubstrings    []string
	TitleSubstrings []string
	KeywordOverlap  []string
}

// Empty reports whether no clause is set. Empty criteria match nothing.
func (c SectionCriteria) Empty() bool {
	return len(c.IDSubstrings) == 0 && len(c.TitleSubstrings) == 0 && len(c.KeywordOverlap) == 0
}

// Matches evaluates the predicate against a section.
func (c SectionCriteria) Matches(section *core.Section) bool {
	idLower := strings.ToLower(section.ID)
	for _, sub := range c.IDSubstrings {
		if sub != "" && strings.Contains(idLower, strings.ToLower(sub)) {
			return true
		}
	}

	titleLower := strings.ToLower(section.Title)
	for _, sub := range c.TitleSubstrings {
		if sub != "" && strings.Contains(titleLower, strings.ToLower(sub)) {
			return true
		}
	}

	if len(c.KeywordOverlap) > 0 {
		for _, kw := range section.Keywords {
			kwLower := strings.ToLower(kw)
			for _, term := range c.KeywordOverlap {
				if kwLower == term {
					return true
				}
			}
		}
	}

	return false
}

// SectionRepository provides access to the sectioned content of code
// documents, grouped by document (map) identifier.
type SectionRepository interface {
	// PutSections stores sections under a document identifier, replacing any
	// existing sections with the same ids. Used by data-loading tooling.
	PutSections(ctx context.Context, mapCode string, sections ...*core.Section) error

	// FindSections returns the sections of a document matching the criteria.
	// Empty criteria yield no sections.
	FindSections(ctx context.Context, mapCode string, criteria SectionCriteria) ([]*core.Section, error)

	// BulkFetch retrieves sections of a document by id in a single pass,
	// for result enrichment. Missing ids are skipped without error.
	BulkFetch(ctx context.Context, mapCode string, ids []string) ([]*core.Section, error)

	// Keywords returns the distinct, lower-cased keyword tags across all of a
	// document's sections. Used to build "did you mean" suggestions.
	Keywords(ctx context.Context, mapCode string) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// QueryCacheRepository persists interpreted queries keyed by the hash of the
// normalized query text and the hash of the prompt/schema version. Writes are
// at-least-once: concurrent misses for the same key may both write and the
// last write wins.
type QueryCacheRepository interface {
	// Get returns the cached interpretation, or nil when absent.
	Get(ctx context.Context, queryHash, promptHash core.ID) (*core.CachedQuery, error)

	// Put stores an interpretation under the key, overwriting any previous value.
	Put(ctx context.Context, queryHash, promptHash core.ID, value *core.CachedQuery) error

	// IncrementHits bumps the hit counter and returns the new count.
	// Returns ErrNotFound when the key is absent.
	IncrementHits(ctx context.Context, queryHash, promptHash core.ID) (int64, error)

	// Close releases backend resources.
	Close() error
}

// HistoryRepository is the search-history sink. Recording is fire-and-forget
// from the core's point of view; callers log and swallow failures.
type HistoryRepository interface {
	// Record appends a history entry.
	Record(ctx context.Context, entry *core.HistoryEntry) error

	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]*core.HistoryEntry, error)

	// Close releases backend resources.
	Close() error
}
