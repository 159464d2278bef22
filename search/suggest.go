package search

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

const (
	suggestionCutoff = 60.0
	suggestionCount  = 3
)

// suggest builds the zero-results message for a document: the query is
// fuzzy-matched against the document's keyword vocabulary and the closest
// terms are offered. Falls back to a generic message when the matcher is
// disabled, the vocabulary cannot be read, or nothing clears the cutoff.
func (e *Engine) suggest(ctx context.Context, mapCode, query string) string {
	if e.matcher != nil {
		keywords, err := e.sections.Keywords(ctx, mapCode)
		if err != nil {
			e.logger.Warn("keyword vocabulary lookup failed", "map_code", mapCode, "err", err)
		} else if matches := closeMatches(e.matcher, query, keywords); len(matches) > 0 {
			return fmt.Sprintf("No results for '%s'. Did you mean: %s?", query, strings.Join(matches, ", "))
		}
	}
	return fmt.Sprintf("No results for '%s'. Try different keywords or check spelling.", query)
}

// closeMatches returns up to suggestionCount candidates scoring at least
// suggestionCutoff against the query, best first.
func closeMatches(matcher Matcher, query string, candidates []string) []string {
	type scored struct {
		term  string
		ratio float64
	}
	kept := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if ratio := matcher.Ratio(query, candidate); ratio >= suggestionCutoff {
			kept = append(kept, scored{candidate, ratio})
		}
	}
	slices.SortStableFunc(kept, func(a, b scored) int {
		switch {
		case a.ratio > b.ratio:
			return -1
		case a.ratio < b.ratio:
			return 1
		default:
			return 0
		}
	})
	if len(kept) > suggestionCount {
		kept = kept[:suggestionCount]
	}
	out := make([]string, len(kept))
	for i, s := range kept {
		out[i] = s.term
	}
	return out
}
