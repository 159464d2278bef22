package interpret

import (
	"regexp"
	"strings"
)

// sectionRefPattern matches explicit section references like "3.1.8.5",
// "9.8", "b-1.2.3", or "table-4.1.5.9". Two to five dotted numeric parts,
// optionally preceded by a single-letter or "table" prefix.
var sectionRefPattern = regexp.MustCompile(`(?i)\b((?:(?:table|[a-z])-)?\d{1,2}(?:\.\d{1,2}){1,4})\b`)

// ExtractRefs pulls explicit section references out of a query. It returns
// the references (lower-cased, de-duplicated, in order of appearance) and the
// query text with the references removed.
func ExtractRefs(query string) (refs []string, remainder string) {
	seen := make(map[string]struct{})
	for _, match := range sectionRefPattern.FindAllString(query, -1) {
		ref := strings.ToLower(match)
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		refs = append(refs, ref)
	}
	remainder = sectionRefPattern.ReplaceAllString(query, " ")
	return refs, strings.TrimSpace(remainder)
}

// refsOnly reports whether the remainder left after reference extraction
// carries no words, meaning the query was nothing but section references.
func refsOnly(remainder string) bool {
	for _, r := range remainder {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
