package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/beogip/boredGPT/ai"
)

// Moderator implements ai.Moderator against the OpenAI moderation endpoint.
// langchaingo exposes no moderation surface, so this is a plain HTTP client.
type Moderator struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

type moderationRequest struct {
	Input string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		Flagged bool `json:"flagged"`
	} `json:"results"`
}

// newModerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newModerator(config *ai.Config) (*Moderator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Moderator{
		endpoint: config.Host + "/moderations",
		token:    config.Token,
		client:   &http.Client{Timeout: config.ModerationTimeout},
		logger:   slog.Default().With("component", "openai-moderator"),
	}, nil
}

// NewModerator creates a moderation client using the provided configuration.
//
// Returns ai.Moderator interface to enforce abstraction.
func NewModerator(config *ai.Config) (ai.Moderator, error) {
	return newModerator(config)
}

// Check submits the text for moderation and returns the flagged verdict.
func (m *Moderator) Check(ctx context.Context, text string) (bool, error) {
	body, err := json.Marshal(moderationRequest{Input: text})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)

	resp, err := m.client.Do(req)
	if err != nil {
		m.logger.Error("moderation request failed", "err", err)
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		m.logger.Error("moderation returned non-success status",
			"status", resp.StatusCode,
			"body", string(payload))
		return false, fmt.Errorf("moderation endpoint returned status %d", resp.StatusCode)
	}

	var verdict moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return false, err
	}
	if len(verdict.Results) == 0 {
		return false, fmt.Errorf("moderation response contained no results")
	}

	return verdict.Results[0].Flagged, nil
}
