package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beogip/boredGPT/ai/mock"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/crawl"
	"github.com/beogip/boredGPT/storage/badger"
	"github.com/beogip/boredGPT/webflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNamespace = "refokus-blog"

// fakeSource serves canned pages without a network.
type fakeSource struct {
	urls  []string
	pages map[string]string
	fail  map[string]bool
}

func (s *fakeSource) Discover(ctx context.Context, seedURL string, limit int) ([]string, error) {
	if len(s.urls) == 0 {
		return nil, errors.New("seed unreachable")
	}
	if limit < len(s.urls) {
		return s.urls[:limit], nil
	}
	return s.urls, nil
}

func (s *fakeSource) Fetch(ctx context.Context, pageURL string) (core.Document, error) {
	if s.fail[pageURL] {
		return core.Document{}, errors.New("fetch failed")
	}
	text, ok := s.pages[pageURL]
	if !ok {
		return core.Document{}, errors.New("unknown page")
	}
	return core.Document{URL: pageURL, RawText: text}, nil
}

func newTestIngestor(t *testing.T, source Source, opts ...Option) (*Ingestor, *badger.Index) {
	t.Helper()

	index, backend, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	ing, err := NewIngestor(source, mock.NewMockEmbedder(), index, testNamespace, opts...)
	require.NoError(t, err)
	return ing, index
}

func TestIngestSiteIndexesEveryPage(t *testing.T) {
	source := &fakeSource{
		urls: []string{"https://example.com/blog", "https://example.com/blog/one"},
		pages: map[string]string{
			"https://example.com/blog":     "The blog landing page talks about agencies.",
			"https://example.com/blog/one": "No-code lets teams ship faster.",
		},
	}
	ing, index := newTestIngestor(t, source)

	stats, err := ing.IngestSite(context.Background(), "https://example.com/blog", 15)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Pages)
	assert.Equal(t, 2, stats.Chunks)
	assert.Equal(t, 0, stats.Failed)

	query := mock.DeterministicVector("No-code lets teams ship faster.", 384)
	results, err := index.Query(context.Background(), testNamespace, query, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/blog/one", results[0].Chunk.SourceURL)
}

func TestIngestSitePartialFailure(t *testing.T) {
	source := &fakeSource{
		urls: []string{"https://example.com/blog", "https://example.com/blog/broken"},
		pages: map[string]string{
			"https://example.com/blog": "Reachable content.",
		},
		fail: map[string]bool{"https://example.com/blog/broken": true},
	}
	ing, _ := newTestIngestor(t, source)

	stats, err := ing.IngestSite(context.Background(), "https://example.com/blog", 15)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Pages)
	assert.Equal(t, 1, stats.Failed)
}

func TestIngestSiteUnreachableSeed(t *testing.T) {
	ing, _ := newTestIngestor(t, &fakeSource{})
	_, err := ing.IngestSite(context.Background(), "https://example.com/blog", 15)
	require.Error(t, err)
}

func TestIngestDocumentsSplitsLongPages(t *testing.T) {
	long := strings.Repeat("Paragraph about the agency model.\n\n", 400)
	source := &fakeSource{}
	ing, index := newTestIngestor(t, source)

	stats, err := ing.IngestDocuments(context.Background(), []core.Document{
		{URL: "https://example.com/blog/long", RawText: long},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Pages)
	assert.Greater(t, stats.Chunks, 1)

	results, err := index.Query(context.Background(), testNamespace,
		mock.DeterministicVector("anything", 384), stats.Chunks)
	require.NoError(t, err)
	assert.Len(t, results, stats.Chunks)
}

func TestIngestDocumentsIdempotent(t *testing.T) {
	source := &fakeSource{}
	ing, index := newTestIngestor(t, source)
	doc := core.Document{URL: "https://example.com/blog/one", RawText: "Stable content."}

	for i := 0; i < 2; i++ {
		_, err := ing.IngestDocuments(context.Background(), []core.Document{doc})
		require.NoError(t, err)
	}

	results, err := index.Query(context.Background(), testNamespace,
		mock.DeterministicVector("Stable content.", 384), 10)
	require.NoError(t, err)
	assert.Len(t, results, 1, "re-ingesting the same content must not duplicate entries")
}

func TestIngestDocumentsAllFail(t *testing.T) {
	source := &fakeSource{}
	index, backend, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding service down")
	}

	ing, err := NewIngestor(source, embedder, index, testNamespace)
	require.NoError(t, err)

	stats, err := ing.IngestDocuments(context.Background(), []core.Document{
		{URL: "https://example.com/a", RawText: "one"},
		{URL: "https://example.com/b", RawText: "two"},
	})
	require.ErrorIs(t, err, ErrAllDocumentsFailed)
	assert.Equal(t, 2, stats.Failed)
}

func TestIngestDocumentsEmpty(t *testing.T) {
	ing, _ := newTestIngestor(t, &fakeSource{})
	_, err := ing.IngestDocuments(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNothingToIngest)
}

func TestIngestArticles(t *testing.T) {
	ing, index := newTestIngestor(t, &fakeSource{})

	articles := []webflow.Article{
		{Slug: "no-code-no-compromises", Name: "No-Code, No Compromises", Text: "No-code article body."},
		{Slug: "remote-culture", Name: "Remote Culture", Text: "Remote culture article body."},
	}
	stats, err := ing.IngestArticles(context.Background(), articles, "https://example.com/blog")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Pages)

	results, err := index.Query(context.Background(), testNamespace,
		mock.DeterministicVector("No-code article body.", 384), 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/blog/no-code-no-compromises", results[0].Chunk.SourceURL)
}

func TestNewIngestorRequiresNamespace(t *testing.T) {
	index, backend, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	_, err = NewIngestor(&fakeSource{}, mock.NewMockEmbedder(), index, "")
	assert.ErrorIs(t, err, ErrEmptyNamespace)
}

var _ Source = (*crawl.Crawler)(nil)
