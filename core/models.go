package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier derived from content hashing. It is used for
// query-cache keys and anywhere a stable, deterministic handle is needed.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// CodeFamily identifies a jurisdiction's code line, e.g. a provincial building
// code or one of the national codes. Immutable reference data.
type CodeFamily struct {
	Code        string // short identifier, e.g. "OBC", "NBC"
	DisplayName string // e.g. "Ontario Building Code"
	National    bool   // national codes apply in every province
	Guide       bool   // user's guides are searchable but not enforceable editions
}

// Amendment records a regulation that amended a code edition.
type Amendment struct {
	Regulation  string
	Date        time.Time
	Description string
}

// CodeEdition is one version of a CodeFamily in force for a date range.
// Editions are created by data-loading tooling and read-only at query time.
type CodeEdition struct {
	Family     string   // CodeFamily.Code
	EditionID  string   // unique within the family, e.g. "2024", "2012_v38"
	Year       int      // for display and grouping
	MapCodes   []string // constituent document identifiers, in volume order
	Effective  time.Time
	Superseded *time.Time // nil means currently in force

	// Provenance. Optional; present for editions loaded from regulation data.
	PDFFiles      map[string]string // map code -> publisher PDF filename
	Regulation    string            // e.g. "O. Reg. 332/12"
	VersionNumber int
	Source        string // "elaws", "pdf", "mcp"
	SourceURL     string
	Amendments    []Amendment
}

// Name returns the edition's fully qualified name, e.g. "OBC_2024".
func (e *CodeEdition) Name() string {
	return e.Family + "_" + e.EditionID
}

// InForce reports whether the edition covers the given date. The interval is
// half-open: [Effective, Superseded).
func (e *CodeEdition) InForce(asOf time.Time) bool {
	if asOf.Before(e.Effective) {
		return false
	}
	return e.Superseded == nil || asOf.Before(*e.Superseded)
}

// BBox is a geometric locator for a section on its source page, used for
// page-image cross-referencing.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// Section is one addressable unit of a document's content. Section ids are
// unique only within a document, never globally.
type Section struct {
	ID        string // human-meaningful, e.g. "3.1.8.5"
	Title     string
	Page      int
	PageEnd   int
	Keywords  []string // free-text keyword tags
	HTML      string   // body content
	NotesHTML string
	ParentID  string
	BBox      *BBox
}

// MatchKind labels which matching tier produced a search result.
type MatchKind string

const (
	MatchSectionRef MatchKind = "section_ref"
	MatchExactID    MatchKind = "exact_id"
	MatchExact      MatchKind = "exact"
	MatchSynonym    MatchKind = "synonym"
	MatchFuzzy      MatchKind = "fuzzy"
)

// SearchResult is an ephemeral, per-query result. Edition, MapCode and
// SourceDate are populated by the orchestrator after the per-document search;
// HTML, NotesHTML and BBox are populated by bulk enrichment.
type SearchResult struct {
	SectionID string
	Title     string
	Page      int
	PageEnd   int
	Score     float64
	Match     MatchKind

	Edition    string // owning edition name, e.g. "OBC_2024"
	MapCode    string // source document identifier
	SourceDate string // as-of date of the search, "2006-01-02"

	HTML      string
	NotesHTML string
	BBox      *BBox
}

// ParsedQuery is the structured interpretation of a natural-language question.
// Every keyword is drawn from the controlled vocabulary.
type ParsedQuery struct {
	Date         time.Time
	Keywords     []string
	BuildingType string
	Province     string
	SectionRefs  []string // extracted lexically, never cached
}

// TopResult is the compact per-result summary retained in search history.
type TopResult struct {
	Code      string
	Year      string
	SectionID string
	Title     string
}

// HistoryEntry records one executed search for analytics. Recording is
// fire-and-forget; a failed write never fails the search itself.
type HistoryEntry struct {
	ID          string // uuid
	Actor       string // user identity, empty for anonymous searches
	IPAddress   string // client IP for anonymous tracking
	Query       string
	Params      ParsedQuery
	ResultCount int
	TopResults  []TopResult
	Timestamp   time.Time
}

// CachedQuery is a persisted interpretation result, keyed by the hash of the
// normalized query and the prompt version. Section references are not part of
// the payload; they are re-extracted and overlaid on every call.
type CachedQuery struct {
	RawQuery  string
	Params    ParsedQuery
	Model     string
	Hits      int64
	CreatedAt time.Time
}
