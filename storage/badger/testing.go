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


package badger

import "github.com/poiesic/codechronicle/storage"

// NewMemoryStores creates in-memory section, query-cache, and history
// repositories for testing. Caller must close the repos and the backend
// when done.
func NewMemoryStores() (storage.SectionRepository, storage.QueryCacheRepository, storage.HistoryRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	sections, err := NewSectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	cache, err := NewQueryCacheRepository(backend)
	if err != nil {
		sections.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	history, err := NewHistoryRepository(backend)
	if err != nil {
		cache.Close()
		sections.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return sections, cache, history, backend, nil
}
