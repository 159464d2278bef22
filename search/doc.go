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


// Package search implements the tiered section-matching engine and the
// edition fan-out orchestrator.
//
// Engine scores the sections of a single document against a query in four
// tiers, first match wins: explicit section references, the whole query as an
// id substring, exact/synonym term overlap, and fuzzy string similarity.
//
// Orchestrator resolves the code editions applicable to a jurisdiction and
// date, searches every document of every edition concurrently, tags and
// enriches the hits, and merges them into one deduplicated, ranked list.
package search
