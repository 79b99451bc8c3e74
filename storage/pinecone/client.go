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


package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/storage"
)

// Client implements storage.VectorIndex against a hosted Pinecone-style
// index over its REST interface. Chunk text and provenance travel in the
// record metadata; the record ID is the chunk's content-derived identity so
// upserts replace rather than duplicate.
type Client struct {
	indexHost string
	apiKey    string
	client    *http.Client
	logger    *slog.Logger
}

var _ storage.VectorIndex = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// point the adapter at a local fake.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates an adapter for the index served at indexHost.
func NewClient(indexHost, apiKey string, opts ...Option) (*Client, error) {
	if indexHost == "" {
		return nil, errors.New("pinecone: index host required")
	}
	if apiKey == "" {
		return nil, errors.New("pinecone: api key required")
	}

	c := &Client{
		indexHost: indexHost,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    slog.Default().With("component", "pinecone-index"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type vectorRecord struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors   []vectorRecord `json:"vectors"`
	Namespace string         `json:"namespace"`
}

type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	Namespace       string    `json:"namespace"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

type queryResponse struct {
	Matches []struct {
		ID       string            `json:"id"`
		Score    float32           `json:"score"`
		Metadata map[string]string `json:"metadata"`
	} `json:"matches"`
}

// Upsert inserts or replaces entries in the namespace.
func (c *Client) Upsert(ctx context.Context, namespace string, entries []core.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	records := make([]vectorRecord, len(entries))
	for i, entry := range entries {
		records[i] = vectorRecord{
			ID:     strconv.FormatUint(uint64(entry.Chunk.ID()), 10),
			Values: entry.Vector,
			Metadata: map[string]string{
				"text":      entry.Chunk.Text,
				"sourceUrl": entry.Chunk.SourceURL,
				"seq":       strconv.Itoa(entry.Chunk.SequenceIndex),
			},
		}
	}

	var ignored json.RawMessage
	return c.post(ctx, "/vectors/upsert", upsertRequest{Vectors: records, Namespace: namespace}, &ignored)
}

// Query returns the k nearest chunks in the namespace, ordered by
// descending score with ties broken by ascending sequence index.
func (c *Client) Query(ctx context.Context, namespace string, vector []float32, k int) ([]core.ScoredChunk, error) {
	if k <= 0 || len(vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	var resp queryResponse
	err := c.post(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            k,
		Namespace:       namespace,
		IncludeMetadata: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	results := make([]core.ScoredChunk, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		seq, err := strconv.Atoi(match.Metadata["seq"])
		if err != nil {
			c.logger.Warn("match metadata carries malformed sequence index",
				"id", match.ID, "seq", match.Metadata["seq"])
			seq = 0
		}
		results = append(results, core.ScoredChunk{
			Chunk: core.Chunk{
				Text:          match.Metadata["text"],
				SourceURL:     match.Metadata["sourceUrl"],
				SequenceIndex: seq,
			},
			Score: match.Score,
		})
	}

	// The provider orders by score but leaves tie order unspecified.
	slices.SortFunc(results, func(a, b core.ScoredChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return a.Chunk.SequenceIndex - b.Chunk.SequenceIndex
	})

	return results, nil
}

// Close is a no-op; the adapter holds no connection state.
func (c *Client) Close() error {
	return nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("index request failed", "path", path, "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("index returned non-success status",
			"path", path, "status", resp.StatusCode, "body", string(detail))
		return fmt.Errorf("vector index returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
