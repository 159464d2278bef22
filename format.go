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


package codechronicle

import (
	"slices"
	"strings"

	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/registry"
)

// DisplayResult is one search hit shaped for display.
type DisplayResult struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Code            string     `json:"code"`
	CodeDisplayName string     `json:"code_display_name"`
	Page            int        `json:"page"`
	PageEnd         int        `json:"page_end"`
	BBox            *core.BBox `json:"bbox,omitempty"`
	Score           float64    `json:"score"`
	Match           string     `json:"match_type,omitempty"`
	PDFFilename     string     `json:"pdf_filename,omitempty"`
	HTML            string     `json:"html_content,omitempty"`
	NotesHTML       string     `json:"notes_html,omitempty"`
	SourceURL       string     `json:"source_url,omitempty"`
}

// formatResults shapes raw hits for display: edition display names, PDF
// provenance, and a global score-descending order across editions.
func formatResults(reg registry.Registry, results []core.SearchResult) []DisplayResult {
	formatted := make([]DisplayResult, 0, len(results))
	for _, result := range results {
		display := DisplayResult{
			ID:              result.SectionID,
			Title:           result.Title,
			Code:            result.Edition,
			CodeDisplayName: editionDisplayName(reg, result.Edition),
			Page:            result.Page,
			PageEnd:         result.PageEnd,
			BBox:            result.BBox,
			Score:           result.Score,
			Match:           string(result.Match),
			HTML:            result.HTML,
			NotesHTML:       result.NotesHTML,
		}
		if edition, ok := reg.Edition(result.Edition); ok {
			display.PDFFilename = edition.PDFFiles[result.MapCode]
			display.SourceURL = edition.SourceURL
		}
		formatted = append(formatted, display)
	}

	slices.SortStableFunc(formatted, func(a, b DisplayResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return formatted
}

// editionDisplayName turns "OBC_2024" into "Ontario Building Code 2024".
func editionDisplayName(reg registry.Registry, editionName string) string {
	family, year, found := strings.Cut(editionName, "_")
	display := reg.DisplayName(family)
	if !found || year == "" {
		return display
	}
	return display + " " + year
}
