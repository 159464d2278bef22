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


package core

import "fmt"

// ValidateSection validates a Section according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//
// NOT validated (optional content):
//   - Title, Keywords, HTML (sections may be bare placeholders until enriched)
//   - Page/PageEnd (tables of contents carry no page data)
func ValidateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidSection)
	}

	if section.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptySectionID)
	}

	return nil
}

// ValidateEdition validates a CodeEdition according to domain rules.
//
// Validation rules:
//   - Family and EditionID must not be empty
//   - Effective date must be set
//   - Superseded date, when present, must not precede the effective date
//
// Deliberately NOT validated: contiguity with sibling editions. The loader
// tolerates gaps and overlaps; the resolver picks the latest effective
// edition not exceeding the search date.
func ValidateEdition(edition *CodeEdition) error {
	if edition == nil {
		return fmt.Errorf("%w: edition is nil", ErrInvalidEdition)
	}

	if edition.Family == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEdition, ErrEmptyFamily)
	}

	if edition.EditionID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEdition, ErrEmptyEditionID)
	}

	if edition.Effective.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidEdition, ErrZeroEffectiveDate)
	}

	if edition.Superseded != nil && edition.Superseded.Before(edition.Effective) {
		return fmt.Errorf("%w: %w", ErrInvalidEdition, ErrInvertedDateRange)
	}

	return nil
}
