package ai

import (
	"context"

	"github.com/beogip/boredGPT/core"
)

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts. A batch failure fails the whole batch; callers must not
	// assume partial success.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces a completion for a conversation. It is used both for
// answer generation and for condensing follow-up questions.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateText runs a single chat completion over the given messages and
	// returns the raw model output. One attempt only: transient provider
	// failures surface as errors, not retries.
	GenerateText(ctx context.Context, messages []core.Message) (string, error)
}

// Moderator produces a content-moderation verdict for a piece of text.
type Moderator interface {
	// Check returns true if the text is flagged by the moderation provider.
	Check(ctx context.Context, text string) (bool, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder, Generator
// and Moderator instances, ensuring they share configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the chat completion service.
	Generator() Generator

	// Moderator returns the content moderation service.
	Moderator() Moderator

	// Close releases resources held by the provider and its services.
	Close() error
}
