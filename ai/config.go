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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the AI service provider. Every recognized
// option is an explicit field validated at construction; provider calls
// never consume loose stringly-typed settings.
type Config struct {
	// Host is the base URL for the OpenAI-compatible API.
	// Example: "https://api.openai.com/v1"
	Host string

	// Token is the API credential. Use "none" for local services that do not
	// require authentication.
	Token string

	// Organization is the optional OpenAI organization header.
	Organization string

	// EmbeddingModel is the model identifier for text embeddings.
	// Example: "text-embedding-3-small"
	EmbeddingModel string

	// ChatModel is the model identifier for completion calls.
	// Example: "gpt-3.5-turbo"
	ChatModel string

	// Temperature controls completion sampling. The reference behavior for
	// grounded answers is 0.4.
	Temperature float64

	// MaxTokens caps completion length. Zero means provider default.
	MaxTokens int

	// ModerationTimeout and EmbeddingTimeout bound the fast upstream calls;
	// GenerationTimeout bounds completion calls. Timeouts surface as
	// upstream failures, never as silent truncation.
	ModerationTimeout time.Duration
	EmbeddingTimeout  time.Duration
	GenerationTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the base API URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithToken sets the API credential.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) ConfigOption {
	return func(c *Config) {
		c.Organization = org
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the completion model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithTemperature sets the completion sampling temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithMaxTokens caps completion length.
func WithMaxTokens(maxTokens int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = maxTokens
	}
}

// DefaultConfig returns a Config with the reference settings for the hosted
// OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Host:              "https://api.openai.com/v1",
		Token:             "",
		EmbeddingModel:    "text-embedding-ada-002",
		ChatModel:         "gpt-3.5-turbo",
		Temperature:       0.4,
		ModerationTimeout: 5 * time.Second,
		EmbeddingTimeout:  5 * time.Second,
		GenerationTimeout: 20 * time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided
// options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in canonical form. It adds the /v1
// suffix to the host if missing, which OpenAI-compatible APIs require.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete. It
// normalizes the configuration first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Token == "" {
		return errors.New("ai config: Token is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.MaxTokens < 0 {
		return errors.New("ai config: MaxTokens cannot be negative")
	}
	return nil
}
