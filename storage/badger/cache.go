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

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage"
)

// QueryCacheRepository implements storage.QueryCacheRepository for BadgerDB.
type QueryCacheRepository struct {
	backend *Backend
}

var _ storage.QueryCacheRepository = (*QueryCacheRepository)(nil)

// NewQueryCacheRepository creates a new QueryCacheRepository.
func NewQueryCacheRepository(backend *Backend) (storage.QueryCacheRepository, error) {
	return &QueryCacheRepository{
		backend: backend,
	}, nil
}

// Close releases resources. QueryCacheRepository has no resources to release.
func (r *QueryCacheRepository) Close() error {
	return nil
}

// Get returns the cached interpretation, or nil when absent.
func (r *QueryCacheRepository) Get(ctx context.Context, queryHash, promptHash core.ID) (*core.CachedQuery, error) {
	var result *core.CachedQuery
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readCachedQuery(tx, makeCacheKey(queryHash, promptHash))
		return err
	}, false)
	return result, err
}

// Put stores an interpretation, overwriting any previous value.
func (r *QueryCacheRepository) Put(ctx context.Context, queryHash, promptHash core.ID, value *core.CachedQuery) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCacheKey(queryHash, promptHash)
		if err := tx.Set(key, storage.MarshalCachedQuery(value)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// IncrementHits bumps the hit counter and returns the new count.
func (r *QueryCacheRepository) IncrementHits(ctx context.Context, queryHash, promptHash core.ID) (int64, error) {
	var hits int64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCacheKey(queryHash, promptHash)
		cached, err := readCachedQuery(tx, key)
		if err != nil {
			return err
		}
		if cached == nil {
			return storage.ErrNotFound
		}

		cached.Hits++
		hits = cached.Hits
		if err := tx.Set(key, storage.MarshalCachedQuery(cached)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return hits, err
}

// readCachedQuery reads a cached query from the transaction. Returns nil when absent.
func readCachedQuery(tx *badger.Txn, key []byte) (*core.CachedQuery, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var cached *core.CachedQuery
	err = item.Value(func(val []byte) error {
		var err error
		cached, err = storage.UnmarshalCachedQuery(val)
		return err
	})
	return cached, err
}
