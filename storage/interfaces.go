package storage

import (
	"context"

	"github.com/beogip/boredGPT/core"
)

// VectorIndex stores embedded chunks under namespaces and answers
// similarity queries. Implementations must be thread-safe: the index is the
// only state shared across requests, with concurrent readers during
// concurrent upserts.
type VectorIndex interface {
	// Upsert inserts or replaces entries in the namespace. Replacement is
	// keyed by chunk identity (sourceURL + sequenceIndex): upserting the
	// same chunk twice leaves a single entry with the newest vector and
	// text. Entries absent from the batch are never deleted.
	Upsert(ctx context.Context, namespace string, entries []core.IndexEntry) error

	// Query returns up to k chunks from the namespace ordered by descending
	// similarity to the query vector; equal scores are ordered by ascending
	// sequence index. Entries never cross namespaces.
	Query(ctx context.Context, namespace string, vector []float32, k int) ([]core.ScoredChunk, error)

	// Close closes the index and releases resources.
	Close() error
}
