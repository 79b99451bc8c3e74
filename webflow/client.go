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

package webflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const defaultHost = "https://api.webflow.com"

var (
	markupPattern = regexp.MustCompile(`<[^>]+>`)
	nbspPattern   = regexp.MustCompile(`&nbsp;`)
)

// Article is a published CMS item with its markup stripped.
type Article struct {
	Slug string
	Name string
	Text string
}

// Client reads CMS collection items from the Webflow API.
type Client struct {
	host     string
	token    string
	client   *http.Client
	attempts uint
	logger   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHost overrides the API host, mainly for tests.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = strings.TrimSuffix(host, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Webflow API client.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	c := &Client{
		host:     defaultHost,
		token:    token,
		client:   &http.Client{Timeout: 15 * time.Second},
		attempts: 3,
		logger:   slog.Default().With("component", "webflow"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type itemsResponse struct {
	Items []struct {
		Slug     string `json:"slug"`
		Name     string `json:"name"`
		Content  string `json:"post-body"`
		Draft    bool   `json:"_draft"`
		Archived bool   `json:"_archived"`
	} `json:"items"`
}

// ListArticles fetches every published item in a collection. Draft and
// archived items are skipped.
func (c *Client) ListArticles(ctx context.Context, collectionID string) ([]Article, error) {
	body, err := retry.DoWithData(func() ([]byte, error) {
		endpoint := fmt.Sprintf("%s/collections/%s/items", c.host, collectionID)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, retry.Unrecoverable(err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept-Version", "1.0.0")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("collection items request returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListItems, err)
	}

	var parsed itemsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListItems, err)
	}

	articles := make([]Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Draft || item.Archived {
			continue
		}
		articles = append(articles, Article{
			Slug: item.Slug,
			Name: item.Name,
			Text: StripMarkup(item.Content),
		})
	}

	c.logger.Info("listed collection articles",
		"collection", collectionID, "total", len(parsed.Items), "published", len(articles))
	return articles, nil
}

// StripMarkup removes HTML tags and non-breaking space entities,
// collapsing the result's surrounding whitespace.
func StripMarkup(content string) string {
	text := markupPattern.ReplaceAllString(content, " ")
	text = nbspPattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
