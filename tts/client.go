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

// Package tts synthesizes spoken audio for answers through the ElevenLabs
// API. The audio travels inline as a data URI so the chat response stays a
// single JSON document.
package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHost = "https://api.elevenlabs.io/v1"

// Client synthesizes speech from text.
type Client struct {
	host   string
	apiKey string
	voice  string
	client *http.Client
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

// NewClient creates a speech synthesis client for a specific voice.
func NewClient(apiKey, voice string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingKey
	}
	if voice == "" {
		return nil, ErrMissingVoice
	}
	c := &Client{
		host:   defaultHost,
		apiKey: apiKey,
		voice:  voice,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type synthesizeRequest struct {
	Text          string        `json:"text"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to speech and returns the audio as a
// data:audio/mpeg base64 URI.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	payload, err := json.Marshal(synthesizeRequest{Text: text})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s", c.host, c.voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrSynthesis, resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSynthesis, err)
	}

	return "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(audio), nil
}
