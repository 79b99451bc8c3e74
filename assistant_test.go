package boredgpt

import (
	"context"
	"strings"
	"testing"

	"github.com/beogip/boredGPT/ai/mock"
	"github.com/beogip/boredGPT/config"
	"github.com/beogip/boredGPT/core"
	"github.com/beogip/boredGPT/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		OpenAIKey:   "sk-test",
		DataDir:     "unused",
		Namespace:   "refokus-blog",
		SeedURL:     "https://example.com/blog",
		CrawlLimit:  15,
		TokenBudget: 4000,
		RetrievalK:  4,
	}
}

func newTestAssistant(t *testing.T) (*Assistant, *mock.MockProvider) {
	t.Helper()

	index, backend, err := badger.NewMemoryIndex()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	provider := mock.NewMockProvider()
	assistant, err := New(testConfig(), WithProvider(provider), WithIndex(index))
	require.NoError(t, err)
	t.Cleanup(func() { _ = assistant.Close() })

	return assistant, provider
}

func TestChatEndToEnd(t *testing.T) {
	assistant, provider := newTestAssistant(t)

	// index some content first so retrieval has something to return
	_, err := assistant.ingestor.IngestDocuments(context.Background(), []core.Document{
		{URL: "https://example.com/blog/no-code", RawText: "No-code lets teams ship faster."},
	})
	require.NoError(t, err)

	provider.GetMockGenerator().Responses = []string{
		"What does no-code change?",
		`{"answer": "It lets teams ship faster.", "article": "https://example.com/blog/no-code"}`,
	}

	answer, err := assistant.Chat(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "Tell me about no-code"},
	})
	require.NoError(t, err)
	assert.Equal(t, "It lets teams ship faster.", answer.Text)
	assert.Equal(t, "https://example.com/blog/no-code", answer.SourceURL)
}

func TestIndexThenChatSharesNamespace(t *testing.T) {
	assistant, provider := newTestAssistant(t)

	_, err := assistant.ingestor.IngestDocuments(context.Background(), []core.Document{
		{URL: "https://example.com/blog/remote", RawText: "Remote culture demands written communication."},
	})
	require.NoError(t, err)

	provider.GetMockGenerator().GenerateFunc = func(ctx context.Context, messages []core.Message) (string, error) {
		if strings.Contains(messages[len(messages)-1].Content, "Standalone question:") {
			return "How should remote teams communicate?", nil
		}
		// the answering system prompt must carry the indexed text as context
		assert.Contains(t, messages[0].Content, "Remote culture demands written communication.")
		return `{"answer": "Write things down.", "article": ""}`, nil
	}

	answer, err := assistant.Chat(context.Background(), []core.Message{
		{Role: core.RoleUser, Content: "How should remote teams communicate?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Write things down.", answer.Text)
}

func TestIndexWebflowRequiresConfiguration(t *testing.T) {
	assistant, _ := newTestAssistant(t)
	_, err := assistant.IndexWebflow(context.Background())
	assert.ErrorIs(t, err, ErrWebflowNotConfigured)
}

func TestIndexSiteUnreachableSeed(t *testing.T) {
	assistant, _ := newTestAssistant(t)
	assistant.cfg.SeedURL = "http://127.0.0.1:1/blog"

	_, err := assistant.IndexSite(context.Background())
	require.Error(t, err)
}
