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

// Package boredgpt assembles the retrieval-augmented blog assistant: an
// ingestion pipeline that indexes articles into a vector store, and an
// answering pipeline that responds to conversations grounded in them.
package boredgpt

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/beogip/boredGPT/ai"
	"github.com/beogip/boredGPT/ai/openai"
	"github.com/beogip/boredGPT/chat"
	"github.com/beogip/boredGPT/config"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/crawl"
	"github.com/beogip/boredGPT/ingestion"
	"github.com/beogip/boredGPT/storage"
	"github.com/beogip/boredGPT/storage/badger"
	"github.com/beogip/boredGPT/storage/pinecone"
	"github.com/beogip/boredGPT/webflow"
)

// Assistant owns the full stack: AI provider, vector index and both
// pipelines. Create one with New and release it with Close.
type Assistant struct {
	cfg      *config.Config
	provider ai.Provider
	backend  *badger.Backend
	index    storage.VectorIndex
	pipeline *chat.Pipeline
	ingestor *ingestion.Ingestor
	logger   *slog.Logger
}

// Option overrides a default collaborator, mainly for tests.
type Option func(*Assistant)

// WithProvider injects an AI provider instead of the OpenAI one.
func WithProvider(provider ai.Provider) Option {
	return func(a *Assistant) {
		a.provider = provider
	}
}

// WithIndex injects a vector index instead of the configured one.
func WithIndex(index storage.VectorIndex) Option {
	return func(a *Assistant) {
		a.index = index
	}
}

// WithLogger replaces the assistant logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) {
		a.logger = logger
	}
}

// New builds an assistant from configuration. The local badger index is
// the default; configuring Pinecone switches to the hosted one.
func New(cfg *config.Config, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.provider == nil {
		provider, err := openai.NewProvider(ai.NewConfig(
			ai.WithHost(cfg.OpenAIHost),
			ai.WithToken(cfg.OpenAIKey),
			ai.WithOrganization(cfg.OpenAIOrg),
			ai.WithChatModel(cfg.ChatModel),
			ai.WithEmbeddingModel(cfg.EmbeddingModel),
		))
		if err != nil {
			return nil, fmt.Errorf("creating ai provider: %w", err)
		}
		a.provider = provider
	}

	if a.index == nil {
		if cfg.UsePinecone() {
			client, err := pinecone.NewClient(cfg.PineconeHost, cfg.PineconeAPIKey)
			if err != nil {
				return nil, fmt.Errorf("creating pinecone client: %w", err)
			}
			a.index = client
		} else {
			backend, err := badger.OpenBackend(filepath.Join(cfg.DataDir, "index"), false)
			if err != nil {
				return nil, fmt.Errorf("opening index store: %w", err)
			}
			a.backend = backend
			a.index = badger.NewIndex(backend)
		}
	}

	pipeline, err := chat.NewPipeline(a.provider, a.index, cfg.Namespace,
		chat.WithTokenBudget(cfg.TokenBudget),
		chat.WithTopK(cfg.RetrievalK),
		chat.WithLogger(a.logger),
	)
	if err != nil {
		a.closePartial()
		return nil, err
	}
	a.pipeline = pipeline

	ingestor, err := ingestion.NewIngestor(crawl.NewCrawler(), a.provider.Embedder(), a.index, cfg.Namespace,
		ingestion.WithLogger(a.logger),
	)
	if err != nil {
		a.closePartial()
		return nil, err
	}
	a.ingestor = ingestor

	return a, nil
}

// Chat answers a conversation against the indexed corpus.
func (a *Assistant) Chat(ctx context.Context, messages []core.Message) (core.Answer, error) {
	return a.pipeline.Respond(ctx, messages)
}

// Respond answers a conversation against the indexed corpus. It is the
// server.Responder method name for Chat.
func (a *Assistant) Respond(ctx context.Context, messages []core.Message) (core.Answer, error) {
	return a.Chat(ctx, messages)
}

// IndexSite crawls the configured seed URL and indexes what it finds.
func (a *Assistant) IndexSite(ctx context.Context) (ingestion.Stats, error) {
	return a.ingestor.IngestSite(ctx, a.cfg.SeedURL, a.cfg.CrawlLimit)
}

// IndexWebflow lists the configured CMS collection and indexes every
// published article.
func (a *Assistant) IndexWebflow(ctx context.Context) (ingestion.Stats, error) {
	if a.cfg.WebflowToken == "" || a.cfg.WebflowCollection == "" {
		return ingestion.Stats{}, ErrWebflowNotConfigured
	}

	client, err := webflow.NewClient(a.cfg.WebflowToken)
	if err != nil {
		return ingestion.Stats{}, err
	}

	articles, err := client.ListArticles(ctx, a.cfg.WebflowCollection)
	if err != nil {
		return ingestion.Stats{}, err
	}

	// answers may now reference articles by slug
	slugs := make(map[string]string, len(articles))
	for _, article := range articles {
		slugs[article.Slug] = fmt.Sprintf("%s/%s", a.cfg.SeedURL, article.Slug)
	}
	a.pipeline.UseSourcePolicy(chat.SlugPolicy(slugs))

	return a.ingestor.IngestArticles(ctx, articles, a.cfg.SeedURL)
}

// Close releases the provider and the local index store.
func (a *Assistant) Close() error {
	var firstErr error
	if a.provider != nil {
		if err := a.provider.Close(); err != nil {
			firstErr = err
		}
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (a *Assistant) closePartial() {
	if a.backend != nil {
		_ = a.backend.Close()
	}
	if a.provider != nil {
		_ = a.provider.Close()
	}
}
