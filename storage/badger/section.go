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
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/codechronicle/core"
	"github.com/poiesic/codechronicle/storage"
)

// SectionRepository implements storage.SectionRepository for BadgerDB.
// Sections are stored one record per (document, section id); candidate
// retrieval is a prefix scan over the document with the criteria predicate
// applied per record.
type SectionRepository struct {
	backend *Backend
}

var _ storage.SectionRepository = (*SectionRepository)(nil)

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(backend *Backend) (storage.SectionRepository, error) {
	return &SectionRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SectionRepository has no resources to release.
func (r *SectionRepository) Close() error {
	return nil
}

// PutSections stores sections under a document identifier.
func (r *SectionRepository) PutSections(ctx context.Context, mapCode string, sections ...*core.Section) error {
	for _, section := range sections {
		if err := core.ValidateSection(section); err != nil {
			return err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, section := range sections {
			key := makeSectionKey(mapCode, section.ID)
			value := storage.MarshalSection(section)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("storing sections for %s: %w", mapCode, err)
	}
	return nil
}

// FindSections returns the sections of a document matching the criteria.
func (r *SectionRepository) FindSections(ctx context.Context, mapCode string, criteria storage.SectionCriteria) ([]*core.Section, error) {
	if criteria.Empty() {
		return nil, nil
	}

	var results []*core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSectionPrefix(mapCode)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var section *core.Section
			err := iter.Item().Value(func(val []byte) error {
				var err error
				section, err = storage.UnmarshalSection(val)
				return err
			})
			if err != nil {
				return err
			}
			if section != nil && criteria.Matches(section) {
				results = append(results, section)
			}
		}
		return nil
	}, false)

	return results, err
}

// BulkFetch retrieves sections of a document by id. Missing ids are skipped.
func (r *SectionRepository) BulkFetch(ctx context.Context, mapCode string, ids []string) ([]*core.Section, error) {
	var results []*core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			section, err := readSection(tx, makeSectionKey(mapCode, id))
			if err != nil {
				return err
			}
			if section != nil {
				results = append(results, section)
			}
		}
		return nil
	}, false)
	return results, err
}

// Keywords returns the distinct, lower-cased keyword tags of a document.
func (r *SectionRepository) Keywords(ctx context.Context, mapCode string) ([]string, error) {
	seen := make(map[string]struct{})
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeSectionPrefix(mapCode)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				section, err := storage.UnmarshalSection(val)
				if err != nil {
					return err
				}
				for _, kw := range section.Keywords {
					kw = strings.ToLower(strings.TrimSpace(kw))
					if kw != "" {
						seen[kw] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	slices.Sort(keywords)
	return keywords, nil
}

// readSection reads a section from the transaction. Returns nil when absent.
func readSection(tx *badger.Txn, key []byte) (*core.Section, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var section *core.Section
	err = item.Value(func(val []byte) error {
		var err error
		section, err = storage.UnmarshalSection(val)
		return err
	})
	return section, err
}
