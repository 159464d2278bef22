package search

import (
	"strings"

	"github.com/poiesic/codechronicle/core"
)

// normalizeTerms lower-cases, trims, and de-duplicates terms, preserving
// order of first appearance.
func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

// sectionTerms builds a section's term set: lower-cased keyword tags plus
// lower-cased title words.
func sectionTerms(section *core.Section) map[string]struct{} {
	terms := make(map[string]struct{}, len(section.Keywords)+4)
	for _, kw := range section.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			terms[kw] = struct{}{}
		}
	}
	for _, word := range strings.Fields(strings.ToLower(section.Title)) {
		terms[word] = struct{}{}
	}
	return terms
}

// asSet converts a slice to a set.
func asSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// intersectCount counts the members of a that are in b.
func intersectCount(a, b map[string]struct{}) int {
	count := 0
	for item := range a {
		if _, ok := b[item]; ok {
			count++
		}
	}
	return count
}
