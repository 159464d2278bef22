package ai

// ParsedFields holds the raw extraction result for a query, before
// vocabulary validation and defaulting are applied.
type ParsedFields struct {
	// Date is the date the question refers to, as "YYYY-MM-DD" or a bare
	// "YYYY" year. Empty when the question has no temporal anchor.
	Date string `json:"date"`

	// Keywords are the search terms the model extracted. They are validated
	// against the controlled vocabulary downstream.
	Keywords []string `json:"keywords"`

	// BuildingType categorizes the building the question is about, when
	// stated. Must match one of BuildingTypes.
	BuildingType string `json:"building_type"`

	// Province is the two-letter Canadian province or territory code, when
	// the question names a jurisdiction.
	Province string `json:"province"`
}

// BuildingTypes defines the valid building categories for extraction.
var BuildingTypes = []string{
	"residential",
	"commercial",
	"industrial",
	"institutional",
	"assembly",
	"mixed-use",
	"agricultural",
}

// Provinces defines the valid Canadian province and territory codes.
var Provinces = []string{
	"AB", "BC", "MB", "NB", "NL", "NS", "NT", "NU", "ON", "PE", "QC", "SK", "YT",
}
