// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage"
	"github.com/poiesic/codechronicle/vocab"
)

const (
	// DefaultLimit is the per-document result cap when the caller gives none.
	DefaultLimit = 10
	// MaxLimit is the hard per-document result cap.
	MaxLimit = 50

	fuzzyThreshold = 80.0
	synonymWeight  = 0.9
	fuzzyWeight    = 0.8
)

// Query is one document-level search request.
type Query struct {
	// Terms are the free-text query terms.
	Terms []string
	// Refs are explicit section references.
	Refs []string
	// Limit caps the number of results; clamped to [1, MaxLimit],
	// DefaultLimit when zero or negative.
	Limit int
}

// Hits is the outcome of searching one document.
type Hits struct {
	Results []core.SearchResult
	// Suggestion is a "did you mean" message, set only when Results is empty.
	Suggestion string
}

// Engine runs the tiered matching strategy over the sections of a single
// document. Tiers, first match wins: section-reference, exact-id substring,
// exact term overlap, synonym overlap, fuzzy similarity.
type Engine struct {
	sections storage.SectionRepository
	matcher  Matcher
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMatcher overrides the similarity matcher. Passing nil disables the
// fuzzy tier and fuzzy suggestions.
func WithMatcher(matcher Matcher) EngineOption {
	return func(e *Engine) {
		e.matcher = matcher
	}
}

// WithEngineLogger sets the logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine over the given section store. The default
// matcher is the edit-distance RatioMatcher.
func NewEngine(sections storage.SectionRepository, opts ...EngineOption) *Engine {
	engine := &Engine{
		sections: sections,
		matcher:  NewRatioMatcher(),
		logger:   slog.Default().With("component", "search-engine"),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Search scores the sections of one document against the query and returns
// the ranked hits. Fails only with ErrEmptyQuery.
func (e *Engine) Search(ctx context.Context, mapCode string, query Query) (*Hits, error) {
	terms := normalizeTerms(query.Terms)
	refs := normalizeTerms(query.Refs)
	if len(terms) == 0 && len(refs) == 0 {
		return nil, ErrEmptyQuery
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	origSet := asSet(terms)
	expandedSet := vocab.Expand(origSet)
	fullQuery := strings.Join(terms, " ")

	candidates, err := e.sections.FindSections(ctx, mapCode, buildCriteria(fullQuery, terms, refs, expandedSet))
	if err != nil {
		return nil, err
	}

	results := make([]core.SearchResult, 0, len(candidates))
	for _, section := range candidates {
		score, kind := e.scoreSection(section, fullQuery, origSet, expandedSet, refs)
		if score <= 0 {
			continue
		}
		results = append(results, core.SearchResult{
			SectionID: section.ID,
			Title:     section.Title,
			Page:      section.Page,
			PageEnd:   section.PageEnd,
			Score:     round3(score),
			Match:     kind,
		})
	}

	// Ties keep candidate iteration order.
	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if len(results) > limit {
		results = results[:limit]
	}

	hits := &Hits{Results: results}
	if len(results) == 0 {
		display := fullQuery
		if display == "" {
			display = strings.Join(refs, " ")
		}
		hits.Suggestion = e.suggest(ctx, mapCode, display)
	}

	e.logger.Debug("document searched",
		"map_code", mapCode,
		"candidates", len(candidates),
		"results", len(results))
	return hits, nil
}

// buildCriteria pushes the tier predicates down to the section store: the
// candidate set is every section any tier could score.
func buildCriteria(fullQuery string, terms, refs []string, expanded map[string]struct{}) storage.SectionCriteria {
	criteria := storage.SectionCriteria{
		TitleSubstrings: terms,
	}
	if fullQuery != "" {
		criteria.IDSubstrings = append(criteria.IDSubstrings, fullQuery)
	}
	criteria.IDSubstrings = append(criteria.IDSubstrings, refs...)
	criteria.KeywordOverlap = make([]string, 0, len(expanded))
	for term := range expanded {
		criteria.KeywordOverlap = append(criteria.KeywordOverlap, term)
	}
	slices.Sort(criteria.KeywordOverlap)
	return criteria
}

// scoreSection applies the tiers in order; the first tier that scores wins.
func (e *Engine) scoreSection(section *core.Section, fullQuery string, origSet, expandedSet map[string]struct{}, refs []string) (float64, core.MatchKind) {
	idLower := strings.ToLower(section.ID)

	// Tier 1: explicit section reference.
	for _, ref := range refs {
		if strings.HasSuffix(idLower, ref) {
			return 2.5, core.MatchSectionRef
		}
		if strings.Contains(idLower, ref) {
			return 2.0, core.MatchSectionRef
		}
	}

	// Tier 2: the whole query as an id substring.
	if fullQuery != "" {
		if strings.HasSuffix(idLower, fullQuery) {
			return 2.0, core.MatchExactID
		}
		if strings.Contains(idLower, fullQuery) {
			return 1.5, core.MatchExactID
		}
	}

	if len(origSet) == 0 {
		return 0, ""
	}

	secTerms := sectionTerms(section)

	// Tier 3: exact term overlap, else synonym overlap.
	if overlap := intersectCount(origSet, secTerms); overlap > 0 {
		return float64(overlap) / float64(len(origSet)), core.MatchExact
	}
	if overlap := intersectCount(expandedSet, secTerms); overlap > 0 {
		return synonymWeight * float64(overlap) / float64(len(expandedSet)), core.MatchSynonym
	}

	// Tier 4: fuzzy fallback.
	if e.matcher == nil {
		return 0, ""
	}
	var sum float64
	for term := range origSet {
		best := 0.0
		for secTerm := range secTerms {
			if ratio := e.matcher.Ratio(term, secTerm); ratio > best {
				best = ratio
			}
		}
		if best >= fuzzyThreshold {
			sum += best / 100
		}
	}
	if sum > 0 {
		return sum / float64(len(origSet)) * fuzzyWeight, core.MatchFuzzy
	}
	return 0, ""
}

// round3 rounds to three decimal places.
func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
