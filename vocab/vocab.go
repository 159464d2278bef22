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


// Package vocab holds the controlled keyword vocabulary for query
// interpretation and the synonym table used for search-term expansion.
//
// The interpretation backend is only allowed to emit keywords from this list;
// anything else is discarded at the validation boundary. The list is derived
// from the keyword tags of the loaded code documents plus the synonym table.
package vocab

import "strings"

// Keywords is the controlled vocabulary of acceptable topic keywords.
// Kept sorted for readability; membership checks go through Valid.
var Keywords = []string{
	"access",
	"accessibility",
	"alarm",
	"alarms",
	"assembly",
	"attic",
	"balcony",
	"barrier",
	"basement",
	"bathroom",
	"beam",
	"bearing",
	"ceiling",
	"chimney",
	"cladding",
	"closure",
	"closures",
	"columns",
	"combustible",
	"commercial",
	"concrete",
	"corridor",
	"crawlspace",
	"dampproofing",
	"deck",
	"demolition",
	"detector",
	"detectors",
	"door",
	"doors",
	"drainage",
	"electrical",
	"egress",
	"elevator",
	"energy",
	"exhaust",
	"exit",
	"exits",
	"fan",
	"fire",
	"fireplace",
	"firestopping",
	"flame",
	"flashing",
	"floor",
	"footing",
	"footings",
	"foundation",
	"foundations",
	"garage",
	"glazing",
	"guard",
	"guards",
	"gypsum",
	"handrail",
	"handrails",
	"heating",
	"hvac",
	"industrial",
	"insulation",
	"joists",
	"kitchen",
	"ladder",
	"landing",
	"lighting",
	"lintel",
	"loads",
	"lumber",
	"masonry",
	"mezzanine",
	"occupancy",
	"partition",
	"partitions",
	"plumbing",
	"railing",
	"ramp",
	"ramps",
	"rating",
	"renovation",
	"residential",
	"resistance",
	"roof",
	"roofing",
	"safety",
	"separation",
	"separations",
	"sewage",
	"sheathing",
	"shaft",
	"siding",
	"skylight",
	"smoke",
	"snow",
	"soffit",
	"spacing",
	"span",
	"spans",
	"sprinkler",
	"sprinklers",
	"stair",
	"stairs",
	"structural",
	"stucco",
	"studs",
	"suite",
	"vapour",
	"venting",
	"ventilation",
	"walls",
	"waterproofing",
	"window",
	"windows",
	"wood",
}

// Synonyms maps a query term to additional search terms. Expansion is the
// union of the term and its synonyms; synonym-only matches score lower than
// matches on the original terms.
var Synonyms = map[string][]string{
	"alarm":      {"alarms", "detector", "detectors", "smoke"},
	"barrier":    {"guard", "guards", "railing"},
	"bathroom":   {"plumbing", "fixtures"},
	"door":       {"doors", "closure", "closures"},
	"doors":      {"door", "closure", "closures"},
	"egress":     {"exit", "exits", "door", "doors"},
	"exit":       {"exits", "egress", "door", "doors"},
	"exits":      {"exit", "egress", "door", "doors"},
	"fire":       {"flame", "smoke", "combustible"},
	"foundation": {"foundations", "footing", "footings", "basement"},
	"guard":      {"guards", "railing", "handrail", "handrails"},
	"heating":    {"hvac", "ventilation"},
	"insulation": {"vapour", "energy"},
	"plumbing":   {"drainage", "sewage", "venting"},
	"ramp":       {"ramps", "accessibility", "access"},
	"roof":       {"roofing", "sheathing"},
	"separation": {"separations", "partition", "partitions", "rating"},
	"sprinkler":  {"sprinklers", "fire"},
	"stair":      {"stairs", "handrail", "handrails", "landing"},
	"stairs":     {"stair", "handrail", "handrails", "landing"},
	"structural": {"loads", "beam", "columns", "span", "spans"},
	"wall":       {"walls", "partition", "partitions", "studs"},
	"window":     {"windows", "glazing"},
	"windows":    {"window", "glazing"},
}

var valid = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Keywords))
	for _, kw := range Keywords {
		m[kw] = struct{}{}
	}
	return m
}()

// Valid reports whether the keyword (case-insensitively) belongs to the
// controlled vocabulary.
func Valid(keyword string) bool {
	_, ok := valid[strings.ToLower(keyword)]
	return ok
}

// Filter returns the subset of keywords that belong to the controlled
// vocabulary, lower-cased, preserving input order.
func Filter(keywords []string) []string {
	kept := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if _, ok := valid[lower]; ok {
			kept = append(kept, lower)
		}
	}
	return kept
}

// Expand returns the union of the given terms and their synonyms.
func Expand(terms map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(terms))
	for term := range terms {
		expanded[term] = struct{}{}
		for _, syn := range Synonyms[term] {
			expanded[syn] = struct{}{}
		}
	}
	return expanded
}
