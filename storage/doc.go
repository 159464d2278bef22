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


// Package storage provides the storage abstraction layer for codechronicle.
//
// This package defines repository interfaces that decouple storage
// implementation from the search core. It allows for different storage
// backends (BadgerDB, in-memory, etc.) to be used interchangeably.
//
// # Repositories
//
//   - SectionRepository: sectioned code documents, queried by predicate
//   - QueryCacheRepository: persisted query interpretations keyed by
//     (query hash, prompt hash)
//   - HistoryRepository: the fire-and-forget search history sink
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return interface types to enforce
// abstraction and enable alternative backends:
//
//	sections, err := badger.NewSectionRepository(backend) // returns storage.SectionRepository
//
// # Thread Safety
//
// All repository implementations must be thread-safe. During a single query
// the section store and the edition registry are treated as externally
// consistent, read-only data; the query cache has at-least-once write
// semantics (concurrent misses may both write, last write wins).
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support.
package storage
