package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for index entries.
// It is derived from content so identical chunks map to identical IDs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser represents the human side of the conversation.
	RoleUser Role = "user"
	// RoleAssistant represents the model side of the conversation.
	RoleAssistant Role = "assistant"
	// RoleSystem represents instruction messages.
	RoleSystem Role = "system"
)

// Valid reports whether the role is one of the three recognized values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant || r == RoleSystem
}

// Document is a fetched source page. Documents are transient: they are
// produced by the crawler (or the Webflow corpus client), consumed once by
// the chunker, and never persisted.
type Document struct {
	URL     string
	RawText string
}

// Chunk is the retrieval unit: a bounded-size slice of a source document.
// Chunks are immutable once created.
type Chunk struct {
	Text          string
	SourceURL     string
	SequenceIndex int
}

// ID returns the chunk's content-derived identity, computed from SourceURL
// and SequenceIndex. Re-chunking the same document yields the same IDs,
// which is what makes index upserts idempotent.
func (c *Chunk) ID() ID {
	return IDFromContent(c.SourceURL + "#" + strconv.Itoa(c.SequenceIndex))
}

// IndexEntry pairs a chunk with its embedding vector for storage in a
// vector index namespace.
type IndexEntry struct {
	Chunk  Chunk
	Vector []float32
}

// ScoredChunk is a chunk returned from a similarity query together with its
// similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// Message is a single conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Answer is the pipeline's final product: the answer text plus an optional
// provenance pointer back to a source document. SourceURL is either empty
// or a known corpus identifier.
type Answer struct {
	Text      string `json:"answer"`
	SourceURL string `json:"article"`
}
