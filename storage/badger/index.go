// Copyright 2026 beogip
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
	"errors"
	"log/slog"
	"math"
	"slices"

	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/storage"
	"github.com/dgraph-io/badger/v4"
)

// Index implements storage.VectorIndex on top of BadgerDB. Each namespace
// is a key-prefix partition; similarity queries scan the partition and rank
// by cosine similarity.
type Index struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VectorIndex = (*Index)(nil)

// NewIndex creates a vector index over the given backend.
func NewIndex(backend *Backend) *Index {
	return &Index{
		backend: backend,
		logger:  slog.Default().With("component", "badger-index"),
	}
}

// Upsert inserts or replaces entries keyed by chunk identity. Entries not
// present in the batch are left untouched.
func (idx *Index) Upsert(ctx context.Context, namespace string, entries []core.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	err := idx.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeNamespaceKey(namespace), []byte{1}); err != nil {
			return err
		}
		for i := range entries {
			entry := &entries[i]
			key := makeEntryKey(namespace, entry.Chunk.ID())
			if err := tx.Set(key, storage.MarshalIndexEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		idx.logger.Error("upsert failed", "namespace", namespace, "entries", len(entries), "err", err)
		return err
	}

	idx.logger.Debug("upserted entries", "namespace", namespace, "entries", len(entries))
	return nil
}

// Query scans the namespace and returns the k nearest chunks by cosine
// similarity, ties broken by ascending sequence index.
func (idx *Index) Query(ctx context.Context, namespace string, vector []float32, k int) ([]core.ScoredChunk, error) {
	if k <= 0 || len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []core.ScoredChunk

	err := idx.backend.WithTx(func(tx *badger.Txn) error {
		if _, err := tx.Get(makeNamespaceKey(namespace)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNamespaceNotFound
			}
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeEntryScanPrefix(namespace)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.IndexEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalIndexEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			results = append(results, core.ScoredChunk{
				Chunk: entry.Chunk,
				Score: cosineSimilarity(vector, entry.Vector),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Descending score; equal scores keep ascending sequence order.
	slices.SortFunc(results, func(a, b core.ScoredChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return a.Chunk.SequenceIndex - b.Chunk.SequenceIndex
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Close is a no-op; the backend owns the database lifecycle.
func (idx *Index) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths compare over the shorter one; zero vectors score 0.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
