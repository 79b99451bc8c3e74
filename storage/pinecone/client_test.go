package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beogip/boredGPT/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSendsRecords(t *testing.T) {
	var got upsertRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vectors/upsert", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)

	entries := []core.IndexEntry{
		{
			Chunk:  core.Chunk{Text: "chunk text", SourceURL: "https://example.com/a", SequenceIndex: 1},
			Vector: []float32{0.5, 0.5},
		},
	}
	require.NoError(t, client.Upsert(context.Background(), "blog", entries))

	assert.Equal(t, "blog", got.Namespace)
	require.Len(t, got.Vectors, 1)
	assert.Equal(t, "chunk text", got.Vectors[0].Metadata["text"])
	assert.Equal(t, "https://example.com/a", got.Vectors[0].Metadata["sourceUrl"])
	assert.Equal(t, "1", got.Vectors[0].Metadata["seq"])
	assert.NotEmpty(t, got.Vectors[0].ID)
}

func TestQueryParsesMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)

		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2, req.TopK)
		assert.True(t, req.IncludeMetadata)

		w.Write([]byte(`{"matches":[
			{"id":"1","score":0.9,"metadata":{"text":"best","sourceUrl":"https://example.com/a","seq":"0"}},
			{"id":"2","score":0.7,"metadata":{"text":"second","sourceUrl":"https://example.com/b","seq":"3"}}
		]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)

	results, err := client.Query(context.Background(), "blog", []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "best", results[0].Chunk.Text)
	assert.Equal(t, float32(0.9), results[0].Score)
	assert.Equal(t, 3, results[1].Chunk.SequenceIndex)
}

func TestQueryTieBreakBySequence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matches":[
			{"id":"1","score":0.8,"metadata":{"text":"later","sourceUrl":"https://example.com/a","seq":"7"}},
			{"id":"2","score":0.8,"metadata":{"text":"earlier","sourceUrl":"https://example.com/a","seq":"2"}}
		]}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)

	results, err := client.Query(context.Background(), "blog", []float32{1}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "earlier", results[0].Chunk.Text)
	assert.Equal(t, "later", results[1].Chunk.Text)
}

func TestQueryUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "namespace not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "test-key")
	require.NoError(t, err)

	_, err = client.Query(context.Background(), "missing", []float32{1}, 4)
	assert.Error(t, err)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", "key")
	assert.Error(t, err)

	_, err = NewClient("https://index.example.com", "")
	assert.Error(t, err)
}
