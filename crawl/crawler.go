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

package crawl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/beogip/boredGPT/core"
	"golang.org/x/net/html"
)

// Crawler discovers blog pages from a seed URL and fetches their text.
// Discovery is single-hop: only the seed page is parsed for links.
type Crawler struct {
	client   *http.Client
	attempts uint
	logger   *slog.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Crawler) {
		c.client = hc
	}
}

// WithAttempts sets how many times a fetch is tried before giving up.
// Retries only happen during ingestion; the query pipeline never crawls.
func WithAttempts(attempts uint) Option {
	return func(c *Crawler) {
		if attempts < 1 {
			attempts = 1
		}
		c.attempts = attempts
	}
}

// NewCrawler creates a crawler with a 10 second request timeout and three
// fetch attempts.
func NewCrawler(opts ...Option) *Crawler {
	c := &Crawler{
		client:   &http.Client{Timeout: 10 * time.Second},
		attempts: 3,
		logger:   slog.Default().With("component", "crawler"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover returns up to limit unique absolute URLs reachable from the seed
// page, the seed itself first. Links are extracted from the seed page only,
// in the order they appear; only same-origin relative links count. Finding
// fewer than limit URLs is not an error. An unreachable seed is.
func (c *Crawler) Discover(ctx context.Context, seedURL string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}

	base, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	c.logger.Info("crawling seed page", "url", seedURL, "limit", limit)

	body, err := c.get(ctx, seedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	discovered := []string{base.String()}
	seen := map[string]bool{base.String(): true}

	for _, href := range relativeLinks(doc) {
		if len(discovered) >= limit {
			break
		}
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""
		absolute := resolved.String()
		if seen[absolute] {
			continue
		}
		seen[absolute] = true
		discovered = append(discovered, absolute)
		c.logger.Debug("found unique relative link", "url", absolute)
	}

	c.logger.Info("discovery finished", "found", len(discovered))
	return discovered, nil
}

// Fetch downloads a page and extracts its visible text.
func (c *Crawler) Fetch(ctx context.Context, pageURL string) (core.Document, error) {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return core.Document{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return core.Document{
		URL:     pageURL,
		RawText: visibleText(doc),
	}, nil
}

// get fetches a URL with retries for transient failures.
func (c *Crawler) get(ctx context.Context, pageURL string) (string, error) {
	return retry.DoWithData(func() (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
		if err != nil {
			return "", retry.Unrecoverable(err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("status %d fetching %s", resp.StatusCode, pageURL)
		}

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(payload), nil
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

// relativeLinks returns the href of every anchor whose target starts with
// "/", in document order.
func relativeLinks(doc *html.Node) []string {
	var hrefs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key == "href" && strings.HasPrefix(attr.Val, "/") {
					hrefs = append(hrefs, attr.Val)
					break
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return hrefs
}

// visibleText extracts the text content of a parsed page, skipping script,
// style and head subtrees, with adjacent fragments joined by newlines.
func visibleText(doc *html.Node) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return strings.Join(parts, "\n")
}
