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


package registry

import (
	"time"

	"github.com/poiesic/codechronicle/core"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

// DefaultRegistry returns a registry seeded with the built-in Canadian
// catalog: the four national codes, the provincial codes of Ontario, British
// Columbia, Alberta and Quebec, and the searchable user's guides. Historical
// provincial editions are backfilled separately via LoadRegulations.
func DefaultRegistry() *MemoryRegistry {
	r := NewMemoryRegistry()

	// Provincial families.
	r.AddFamily(core.CodeFamily{Code: "OBC", DisplayName: "Ontario Building Code"})
	r.AddFamily(core.CodeFamily{Code: "BCBC", DisplayName: "BC Building Code"})
	r.AddFamily(core.CodeFamily{Code: "ABC", DisplayName: "Alberta Building Code"})
	r.AddFamily(core.CodeFamily{Code: "QCC", DisplayName: "Quebec Construction Code (Building)"})
	r.AddFamily(core.CodeFamily{Code: "QECB", DisplayName: "Quebec Energy Code for Buildings"})
	r.AddFamily(core.CodeFamily{Code: "QPC", DisplayName: "Quebec Plumbing Code"})
	r.AddFamily(core.CodeFamily{Code: "QSC", DisplayName: "Quebec Safety Code (Fire)"})

	// National families, in fixed search order.
	r.AddFamily(core.CodeFamily{Code: "NBC", DisplayName: "National Building Code", National: true})
	r.AddFamily(core.CodeFamily{Code: "NFC", DisplayName: "National Fire Code", National: true})
	r.AddFamily(core.CodeFamily{Code: "NPC", DisplayName: "National Plumbing Code", National: true})
	r.AddFamily(core.CodeFamily{Code: "NECB", DisplayName: "National Energy Code for Buildings", National: true})

	// User's guides. Searchable documents, never resolved as applicable law.
	r.AddFamily(core.CodeFamily{Code: "IUGP9", DisplayName: "Illustrated User's Guide – NBC Part 9", Guide: true})
	r.AddFamily(core.CodeFamily{Code: "UGP4", DisplayName: "User's Guide – NBC Part 4 Structural Commentaries", Guide: true})
	r.AddFamily(core.CodeFamily{Code: "UGNECB", DisplayName: "User's Guide – NECB", Guide: true})

	r.MapProvince("ON", "OBC")
	r.MapProvince("BC", "BCBC")
	r.MapProvince("AB", "ABC")
	r.MapProvince("QC", "QCC")

	for _, edition := range catalogEditions() {
		// Catalog entries are static and validated by tests; AddEdition only
		// fails on malformed data.
		_ = r.AddEdition(edition)
	}

	return r
}

func catalogEditions() []core.CodeEdition {
	return []core.CodeEdition{
		{
			Family:    "OBC",
			EditionID: "2024",
			Year:      2024,
			MapCodes:  []string{"OBC_Vol1", "OBC_Vol2"},
			PDFFiles: map[string]string{
				"OBC_Vol1": "301880.pdf",
				"OBC_Vol2": "301881.pdf",
			},
			Effective: day(2025, time.January, 1),
			Source:    "mcp",
			Amendments: []core.Amendment{
				{Regulation: "O. Reg. 163/24", Date: day(2024, time.January, 1), Description: "Base regulation"},
				{Regulation: "O. Reg. 447/24", Date: day(2024, time.November, 4), Description: "2024 Compendium November update"},
				{Regulation: "O. Reg. 5/25", Date: day(2025, time.January, 16), Description: "2024 Compendium January 2025 update"},
			},
		},
		{
			Family:    "NBC",
			EditionID: "2025",
			Year:      2025,
			MapCodes:  []string{"NBC"},
			PDFFiles:  map[string]string{"NBC": "NBC2025p1.pdf"},
			Effective: day(2025, time.January, 1),
		},
		{
			Family:     "NBC",
			EditionID:  "2020",
			Year:       2020,
			MapCodes:   []string{"NBC"},
			PDFFiles:   map[string]string{"NBC": "NBC2020p1.pdf"},
			Effective:  day(2020, time.January, 1),
			Superseded: dayPtr(2025, time.January, 1),
		},
		{
			Family:     "NBC",
			EditionID:  "2015",
			Year:       2015,
			MapCodes:   []string{"NBC"},
			PDFFiles:   map[string]string{"NBC": "NBC2015p1.pdf"},
			Effective:  day(2015, time.January, 1),
			Superseded: dayPtr(2020, time.January, 1),
		},
		{
			Family:    "NFC",
			EditionID: "2025",
			Year:      2025,
			MapCodes:  []string{"NFC2025"},
			PDFFiles:  map[string]string{"NFC2025": "NFC2025p1.pdf"},
			Effective: day(2025, time.January, 1),
		},
		{
			Family:    "NPC",
			EditionID: "2025",
			Year:      2025,
			MapCodes:  []string{"NPC2025"},
			PDFFiles:  map[string]string{"NPC2025": "NPC2020p2.pdf"},
			Effective: day(2025, time.January, 1),
		},
		{
			Family:    "NECB",
			EditionID: "2025",
			Year:      2025,
			MapCodes:  []string{"NECB2025"},
			PDFFiles:  map[string]string{"NECB2025": "NECB2025p1.pdf"},
			Effective: day(2025, time.January, 1),
		},
		{
			Family:    "BCBC",
			EditionID: "2024",
			Year:      2024,
			MapCodes:  []string{"BCBC2024"},
			PDFFiles:  map[string]string{"BCBC2024": "bcbc_2024_web_version_20240409.pdf"},
			Effective: day(2024, time.March, 8),
		},
		{
			Family:    "ABC",
			EditionID: "2023",
			Year:      2023,
			MapCodes:  []string{"ABC2023"},
			PDFFiles:  map[string]string{"ABC2023": "2023NBCAE-V1_National_Building_Code2023_Alberta_Edition.pdf"},
			Effective: day(2024, time.May, 1),
		},
		{
			Family:    "QCC",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"QCC2020"},
			PDFFiles:  map[string]string{"QCC2020": "QCC_2020p1.pdf"},
			Effective: day(2025, time.April, 17),
		},
		{
			Family:    "QECB",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"QECB2020"},
			PDFFiles:  map[string]string{"QECB2020": "QECB_2020p1.pdf"},
			Effective: day(2024, time.July, 13),
		},
		{
			Family:    "QPC",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"QPC2020"},
			PDFFiles:  map[string]string{"QPC2020": "QPC_2020p2.pdf"},
			Effective: day(2024, time.July, 11),
		},
		{
			Family:    "QSC",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"QSC2020"},
			PDFFiles:  map[string]string{"QSC2020": "QSC_2020p1.pdf"},
			Effective: day(2025, time.April, 17),
		},
		{
			Family:    "IUGP9",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"IUGP9_2020"},
			PDFFiles:  map[string]string{"IUGP9_2020": "IUGP9_2020p1.pdf"},
			Effective: day(2020, time.January, 1),
		},
		{
			Family:    "UGP4",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"UGP4_2020"},
			PDFFiles:  map[string]string{"UGP4_2020": "UGP4_2020p1.pdf"},
			Effective: day(2020, time.January, 1),
		},
		{
			Family:    "UGNECB",
			EditionID: "2020",
			Year:      2020,
			MapCodes:  []string{"UGNECB_2020"},
			PDFFiles:  map[string]string{"UGNECB_2020": "UGNECB_2020p1.pdf"},
			Effective: day(2020, time.January, 1),
		},
	}
}
