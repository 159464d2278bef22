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


package interpret

import "errors"

var (
	// ErrNoRecognizedTerms indicates the query yielded neither vocabulary
	// keywords nor section references.
	ErrNoRecognizedTerms = errors.New("no recognized search terms. Try terms like: fire safety, structural, plumbing, electrical")

	// ErrEmptyQuery indicates a blank query.
	ErrEmptyQuery = errors.New("query is empty")
)
