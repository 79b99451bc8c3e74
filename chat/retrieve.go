package chat

import (
	"context"

	"github.com/beogip/boredGPT/ai"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/storage"
)

// DefaultTopK is how many chunks a retrieval returns by default.
const DefaultTopK = 4

// Retriever embeds a standalone question and finds the closest chunks in
// a namespace of the vector index.
type Retriever struct {
	embedder  ai.Embedder
	index     storage.VectorIndex
	namespace string
	topK      int
}

// NewRetriever creates a retriever over the given namespace. A
// non-positive topK falls back to DefaultTopK.
func NewRetriever(embedder ai.Embedder, index storage.VectorIndex, namespace string, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder:  embedder,
		index:     index,
		namespace: namespace,
		topK:      topK,
	}
}

// Retrieve returns up to topK chunks ranked by similarity to the
// question, best first.
func (r *Retriever) Retrieve(ctx context.Context, question string) ([]core.ScoredChunk, error) {
	vector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, &UpstreamError{Stage: "embed", Err: err}
	}

	chunks, err := r.index.Query(ctx, r.namespace, vector, r.topK)
	if err != nil {
		return nil, &UpstreamError{Stage: "retrieve", Err: err}
	}
	return chunks, nil
}
