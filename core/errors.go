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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSection indicates a Section failed validation.
	ErrInvalidSection = errors.New("invalid section")

	// ErrInvalidEdition indicates a CodeEdition failed validation.
	ErrInvalidEdition = errors.New("invalid code edition")

	// ErrEmptySectionID indicates the section ID field is empty.
	ErrEmptySectionID = errors.New("section id cannot be empty")

	// ErrEmptyFamily indicates the edition's family code is empty.
	ErrEmptyFamily = errors.New("family code cannot be empty")

	// ErrEmptyEditionID indicates the edition identifier is empty.
	ErrEmptyEditionID = errors.New("edition id cannot be empty")

	// ErrZeroEffectiveDate indicates the edition has no effective date.
	ErrZeroEffectiveDate = errors.New("effective date must be set")

	// ErrInvertedDateRange indicates the superseded date precedes the effective date.
	ErrInvertedDateRange = errors.New("superseded date cannot precede effective date")
)
