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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage/badger"
	"github.com/urfave/cli/v2"
)

// mapFile is the sectioned map JSON format produced by the document mapping
// pipeline. Tables are stored alongside sections and searched the same way.
type mapFile struct {
	Sections []mapEntry `json:"sections"`
	Tables   []mapEntry `json:"tables"`
}

type mapEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Page      int       `json:"page"`
	PageEnd   int       `json:"page_end"`
	Keywords  []string  `json:"keywords"`
	HTML      string    `json:"html"`
	NotesHTML string    `json:"notes_html"`
	ParentID  string    `json:"parent_id"`
	BBox      []float64 `json:"bbox"` // [x0, y0, x1, y1]
}

func loadCommand(c *cli.Context) error {
	ctx := context.Background()

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a map JSON file argument is required")
	}

	mapCode := c.String("map-code")
	if mapCode == "" {
		mapCode = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var contents mapFile
	if err := json.Unmarshal(data, &contents); err != nil {
		return fmt.Errorf("invalid map JSON in %s: %w", path, err)
	}

	sections := convertEntries(append(contents.Sections, contents.Tables...))
	if len(sections) == 0 {
		return fmt.Errorf("no sections found in %s", path)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewSectionRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	if err := repo.PutSections(ctx, mapCode, sections...); err != nil {
		return fmt.Errorf("failed to store sections: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Loaded %s: map_code=%s sections=%d\n", filepath.Base(path), mapCode, len(sections))
	return nil
}

// convertEntries turns map entries into sections, dropping entries with no id
// and collapsing duplicate ids first-wins.
func convertEntries(entries []mapEntry) []*core.Section {
	seen := make(map[string]struct{}, len(entries))
	sections := make([]*core.Section, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			continue
		}
		if _, ok := seen[entry.ID]; ok {
			continue
		}
		seen[entry.ID] = struct{}{}

		section := &core.Section{
			ID:        entry.ID,
			Title:     entry.Title,
			Page:      entry.Page,
			PageEnd:   entry.PageEnd,
			Keywords:  entry.Keywords,
			HTML:      entry.HTML,
			NotesHTML: entry.NotesHTML,
			ParentID:  entry.ParentID,
		}
		if len(entry.BBox) == 4 {
			section.BBox = &core.BBox{X0: entry.BBox[0], Y0: entry.BBox[1], X1: entry.BBox[2], Y1: entry.BBox[3]}
		}
		sections = append(sections, section)
	}
	return sections
}
