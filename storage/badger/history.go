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
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
// Entries are keyed by timestamp so a reverse scan yields most-recent-first.
type HistoryRepository struct {
	backend *Backend
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(backend *Backend) (storage.HistoryRepository, error) {
	return &HistoryRepository{
		backend: backend,
	}, nil
}

// Close releases resources. HistoryRepository has no resources to release.
func (r *HistoryRepository) Close() error {
	return nil
}

// Record appends a history entry.
func (r *HistoryRepository) Record(ctx context.Context, entry *core.HistoryEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryKey(entry.Timestamp, entry.ID)
		if err := tx.Set(key, storage.MarshalHistoryEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Recent returns up to limit entries, most recent first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	var results []*core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(historyPrefix + ":")
		// Seek just past the prefix range so the reverse scan starts at the
		// newest entry.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for iter.Seek(seek); iter.Valid() && len(results) < limit; iter.Next() {
			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}

			var entry *core.HistoryEntry
			err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalHistoryEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}
