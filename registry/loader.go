package registry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/poiesic/codechronicle/core"
)

// regulationEntry is one row of a regulations.json file: a historical edition
// of a provincial code compiled from regulation sources.
type regulationEntry struct {
	Version           string           `json:"version"`
	VersionNumber     int              `json:"version_number"`
	OutputFile        string           `json:"output_file"`
	EffectiveDate     string           `json:"effective_date"`
	Source            string           `json:"source"`
	Regulation        string           `json:"regulation"`
	ElawsURL          string           `json:"elaws_url"`
	AmendmentsApplied []map[string]any `json:"amendments_applied"`
}

// LoadRegulations reads a regulations.json file and backfills historical
// editions for the named families. Entries are chained by effective date: the
// superseded date of each loaded edition is the effective date of its
// successor, and the last loaded edition is superseded by the family's
// earliest existing catalog edition. Existing editions are never mutated.
//
// A missing file is not an error; the registry simply keeps its catalog.
func LoadRegulations(reg *MemoryRegistry, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("regulations file not found, skipping backfill", "path", path)
			return nil
		}
		return fmt.Errorf("read regulations: %w", err)
	}

	var byFamily map[string][]regulationEntry
	if err := json.Unmarshal(data, &byFamily); err != nil {
		return fmt.Errorf("parse regulations: %w", err)
	}

	for family, entries := range byFamily {
		loaded, err := backfillFamily(reg, family, entries)
		if err != nil {
			return err
		}
		if loaded > 0 {
			logger.Info("loaded historical editions", "family", family, "count", loaded)
		}
	}

	return nil
}

func backfillFamily(reg *MemoryRegistry, family string, entries []regulationEntry) (int, error) {
	editions := make([]core.CodeEdition, 0, len(entries))
	for _, entry := range entries {
		if entry.EffectiveDate == "" {
			continue
		}
		edition, err := entryToEdition(family, entry)
		if err != nil {
			return 0, err
		}
		editions = append(editions, edition)
	}
	if len(editions) == 0 {
		return 0, nil
	}

	sort.Slice(editions, func(i, j int) bool {
		return editions[i].Effective.Before(editions[j].Effective)
	})

	// Chain superseded dates; the final loaded edition hands over to the
	// earliest edition already in the catalog, when one exists.
	var next *time.Time
	if existing := reg.Editions(family); len(existing) > 0 {
		next = &existing[0].Effective
	}
	for i := range editions {
		if i+1 < len(editions) {
			editions[i].Superseded = &editions[i+1].Effective
		} else {
			editions[i].Superseded = next
		}
	}

	for _, edition := range editions {
		if err := reg.AddEdition(edition); err != nil {
			return 0, fmt.Errorf("backfill %s: %w", family, err)
		}
	}
	return len(editions), nil
}

func entryToEdition(family string, entry regulationEntry) (core.CodeEdition, error) {
	effective, err := time.Parse("2006-01-02", entry.EffectiveDate)
	if err != nil {
		return core.CodeEdition{}, fmt.Errorf("edition %s v%d: %w", entry.Version, entry.VersionNumber, err)
	}

	year, _ := strconv.Atoi(entry.Version)

	mapCode := entry.OutputFile
	if len(mapCode) > 5 && mapCode[len(mapCode)-5:] == ".json" {
		mapCode = mapCode[:len(mapCode)-5]
	}

	return core.CodeEdition{
		Family:        family,
		EditionID:     fmt.Sprintf("%s_v%02d", entry.Version, entry.VersionNumber),
		Year:          year,
		MapCodes:      []string{mapCode},
		Effective:     effective,
		Source:        entry.Source,
		Regulation:    entry.Regulation,
		VersionNumber: entry.VersionNumber,
		SourceURL:     entry.ElawsURL,
	}, nil
}
