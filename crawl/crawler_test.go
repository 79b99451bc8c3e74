package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverRespectsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/blog/one">one</a>
			<a href="/blog/two">two</a>
			<a href="/blog/three">three</a>
			<a href="/blog/four">four</a>
			<a href="/blog/five">five</a>
		</body></html>`)
	}))
	defer server.Close()

	crawler := NewCrawler()
	urls, err := crawler.Discover(context.Background(), server.URL, 3)
	require.NoError(t, err)

	require.Len(t, urls, 3)
	assert.Equal(t, server.URL, urls[0])
	assert.Equal(t, server.URL+"/blog/one", urls[1])
	assert.Equal(t, server.URL+"/blog/two", urls[2])
}

func TestDiscoverDeduplicatesLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/blog/one">one</a>
			<a href="/blog/one">one again</a>
			<a href="/blog/two">two</a>
		</body></html>`)
	}))
	defer server.Close()

	crawler := NewCrawler()
	urls, err := crawler.Discover(context.Background(), server.URL, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{
		server.URL,
		server.URL + "/blog/one",
		server.URL + "/blog/two",
	}, urls)
}

func TestDiscoverIgnoresAbsoluteLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="https://elsewhere.example.com/page">external</a>
			<a href="/local">local</a>
		</body></html>`)
	}))
	defer server.Close()

	crawler := NewCrawler()
	urls, err := crawler.Discover(context.Background(), server.URL, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{server.URL, server.URL + "/local"}, urls)
}

func TestDiscoverUnreachableSeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	crawler := NewCrawler(WithAttempts(1))
	_, err := crawler.Discover(context.Background(), server.URL, 5)
	if !errors.Is(err, ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestDiscoverLinklessSeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>no links here</p></body></html>`)
	}))
	defer server.Close()

	crawler := NewCrawler()
	urls, err := crawler.Discover(context.Background(), server.URL, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{server.URL}, urls)
}

func TestFetchExtractsVisibleText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>ignored</title><script>var x = 1;</script></head>
			<body><h1>Heading</h1><p>First paragraph.</p><p>Second paragraph.</p></body></html>`)
	}))
	defer server.Close()

	crawler := NewCrawler()
	doc, err := crawler.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, server.URL, doc.URL)
	assert.Contains(t, doc.RawText, "Heading")
	assert.Contains(t, doc.RawText, "First paragraph.")
	assert.Contains(t, doc.RawText, "Second paragraph.")
	if strings.Contains(doc.RawText, "var x = 1") {
		t.Fatal("script content leaked into extracted text")
	}
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `<html><body><p>finally up</p></body></html>`)
	}))
	defer server.Close()

	crawler := NewCrawler(WithAttempts(3))
	doc, err := crawler.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, doc.RawText, "finally up")
	assert.Equal(t, int32(3), calls.Load())
}
