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

// Package ingestion builds the vector index: it crawls or lists source
// pages, splits them into chunks, embeds the chunks and upserts them into
// a namespace. Re-running an ingestion is idempotent because chunk
// identity derives from content.
package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/beogip/boredGPT/ai"
	"github.com/beogip/boredGPT/chunk"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/storage"
	"github.com/beogip/boredGPT/webflow"
	"github.com/panjf2000/ants/v2"
)

// DefaultPoolSize bounds how many documents are processed concurrently.
const DefaultPoolSize = 4

// Source discovers pages and fetches their text.
type Source interface {
	Discover(ctx context.Context, seedURL string, limit int) ([]string, error)
	Fetch(ctx context.Context, pageURL string) (core.Document, error)
}

// Stats summarizes one ingestion run.
type Stats struct {
	Pages  int
	Chunks int
	Failed int
}

// Ingestor runs the crawl, split, embed, upsert pipeline.
type Ingestor struct {
	source    Source
	splitter  *chunk.Splitter
	embedder  ai.Embedder
	index     storage.VectorIndex
	namespace string
	poolSize  int
	logger    *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithPoolSize bounds document-level concurrency.
func WithPoolSize(size int) Option {
	return func(ing *Ingestor) {
		if size > 0 {
			ing.poolSize = size
		}
	}
}

// WithSplitter replaces the default chunk splitter.
func WithSplitter(splitter *chunk.Splitter) Option {
	return func(ing *Ingestor) {
		ing.splitter = splitter
	}
}

// WithLogger replaces the ingestion logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingestor) {
		ing.logger = logger.With("component", "ingestion")
	}
}

// NewIngestor wires an ingestion pipeline into the given index namespace.
func NewIngestor(source Source, embedder ai.Embedder, index storage.VectorIndex, namespace string, opts ...Option) (*Ingestor, error) {
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}

	splitter, err := chunk.NewSplitter(chunk.DefaultMaxChunkSize, chunk.DefaultOverlapSize)
	if err != nil {
		return nil, err
	}

	ing := &Ingestor{
		source:    source,
		splitter:  splitter,
		embedder:  embedder,
		index:     index,
		namespace: namespace,
		poolSize:  DefaultPoolSize,
		logger:    slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing, nil
}

// IngestSite crawls up to limit pages from the seed URL and indexes every
// page it can fetch. A page that fails to fetch or embed is logged and
// skipped; the run fails only when the seed itself is unreachable or no
// page could be indexed at all.
func (ing *Ingestor) IngestSite(ctx context.Context, seedURL string, limit int) (Stats, error) {
	urls, err := ing.source.Discover(ctx, seedURL, limit)
	if err != nil {
		return Stats{}, err
	}

	ing.logger.Info("ingesting site", "seed", seedURL, "pages", len(urls))

	docs := make([]core.Document, 0, len(urls))
	failed := 0
	for _, pageURL := range urls {
		doc, err := ing.source.Fetch(ctx, pageURL)
		if err != nil {
			ing.logger.Warn("skipping unreachable page", "url", pageURL, "error", err)
			failed++
			continue
		}
		docs = append(docs, doc)
	}

	stats, err := ing.IngestDocuments(ctx, docs)
	stats.Failed += failed
	return stats, err
}

// IngestArticles indexes CMS articles, addressing each chunk by the
// article's public URL under baseURL.
func (ing *Ingestor) IngestArticles(ctx context.Context, articles []webflow.Article, baseURL string) (Stats, error) {
	docs := make([]core.Document, 0, len(articles))
	for _, article := range articles {
		docs = append(docs, core.Document{
			URL:     fmt.Sprintf("%s/%s", baseURL, article.Slug),
			RawText: article.Text,
		})
	}
	return ing.IngestDocuments(ctx, docs)
}

// IngestDocuments splits, embeds and upserts documents, one worker per
// document up to the pool size.
func (ing *Ingestor) IngestDocuments(ctx context.Context, docs []core.Document) (Stats, error) {
	if len(docs) == 0 {
		return Stats{}, ErrNothingToIngest
	}

	pool, err := ants.NewPool(ing.poolSize)
	if err != nil {
		return Stats{}, err
	}
	defer pool.Release()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		stats Stats
	)

	for _, doc := range docs {
		doc := doc
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			chunks, err := ing.indexDocument(ctx, doc)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				ing.logger.Warn("document failed", "url", doc.URL, "error", err)
				stats.Failed++
				return
			}
			stats.Pages++
			stats.Chunks += chunks
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			stats.Failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	if stats.Pages == 0 {
		return stats, ErrAllDocumentsFailed
	}

	ing.logger.Info("ingestion finished",
		"pages", stats.Pages, "chunks", stats.Chunks, "failed", stats.Failed)
	return stats, nil
}

// indexDocument splits one document, embeds its chunks in a batch and
// upserts the entries. Returns how many chunks were written.
func (ing *Ingestor) indexDocument(ctx context.Context, doc core.Document) (int, error) {
	chunks := ing.splitter.SplitDocument(doc)
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := ing.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %s: %w", doc.URL, err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embedding %s: got %d vectors for %d chunks", doc.URL, len(vectors), len(chunks))
	}

	entries := make([]core.IndexEntry, len(chunks))
	for i := range chunks {
		entries[i] = core.IndexEntry{Chunk: chunks[i], Vector: vectors[i]}
	}

	if err := ing.index.Upsert(ctx, ing.namespace, entries); err != nil {
		return 0, fmt.Errorf("upserting %s: %w", doc.URL, err)
	}

	ing.logger.Debug("indexed document", "url", doc.URL, "chunks", len(chunks))
	return len(chunks), nil
}
