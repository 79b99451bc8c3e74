// Package storage defines the vector index abstraction shared by the
// ingestion and query pipelines, plus the binary serialization used by the
// local backend.
//
// Two implementations live in sub-packages: storage/badger holds a local
// BadgerDB-backed index (the default, also used in-memory by tests), and
// storage/pinecone adapts a hosted vector index over its REST interface.
package storage
