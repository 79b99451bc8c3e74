package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beogip/boredGPT/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponder struct {
	answer core.Answer
	err    error
	got    []core.Message
}

func (s *stubResponder) Respond(ctx context.Context, messages []core.Message) (core.Answer, error) {
	s.got = messages
	return s.answer, s.err
}

type stubSpeaker struct {
	uri string
	err error
}

func (s *stubSpeaker) Synthesize(ctx context.Context, text string) (string, error) {
	return s.uri, s.err
}

func postChat(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestChatReturnsAnswer(t *testing.T) {
	responder := &stubResponder{
		answer: core.Answer{Text: "It speeds iteration.", SourceURL: "https://example.com/blog/no-code"},
	}
	srv := New(responder)

	rec := postChat(t, srv.Router(), `{"messages": [{"role": "user", "content": "What about no-code?"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "It speeds iteration.", resp.Answer)
	assert.Equal(t, "https://example.com/blog/no-code", resp.Article)
	assert.Empty(t, resp.Audio)

	require.Len(t, responder.got, 1)
	assert.Equal(t, core.RoleUser, responder.got[0].Role)
}

func TestChatOpaqueErrorOnPipelineFailure(t *testing.T) {
	responder := &stubResponder{err: errors.New("moderation flagged: sensitive details")}
	srv := New(responder)

	rec := postChat(t, srv.Router(), `{"messages": [{"role": "user", "content": "hi"}]}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errorMessage, resp["error"])
	assert.NotContains(t, rec.Body.String(), "sensitive details")
}

func TestChatOpaqueErrorOnMalformedBody(t *testing.T) {
	srv := New(&stubResponder{})
	rec := postChat(t, srv.Router(), `{not json`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatAttachesAudio(t *testing.T) {
	responder := &stubResponder{answer: core.Answer{Text: "Spoken answer."}}
	srv := New(responder, WithSpeaker(&stubSpeaker{uri: "data:audio/mpeg;base64,Zm9v"}))

	rec := postChat(t, srv.Router(), `{"messages": [{"role": "user", "content": "hi"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "data:audio/mpeg;base64,Zm9v", resp.Audio)
}

func TestChatAudioFailureDegradesGracefully(t *testing.T) {
	responder := &stubResponder{answer: core.Answer{Text: "Still answered."}}
	srv := New(responder, WithSpeaker(&stubSpeaker{err: errors.New("voice service down")}))

	rec := postChat(t, srv.Router(), `{"messages": [{"role": "user", "content": "hi"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Still answered.", resp.Answer)
	assert.Empty(t, resp.Audio)
}

func TestHealthEndpoint(t *testing.T) {
	srv := New(&stubResponder{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
