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

// Package config loads runtime configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the assistant.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	OpenAIKey      string `env:"OPENAI_KEY,required,notEmpty"`
	OpenAIOrg      string `env:"OPENAI_ORG"`
	OpenAIHost     string `env:"OPENAI_HOST" envDefault:"https://api.openai.com/v1"`
	ChatModel      string `env:"CHAT_MODEL" envDefault:"gpt-3.5-turbo"`
	EmbeddingModel string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-ada-002"`

	DataDir   string `env:"DATA_DIR" envDefault:"data"`
	Namespace string `env:"INDEX_NAMESPACE" envDefault:"refokus-blog"`

	// When both Pinecone settings are present the hosted index replaces
	// the local one.
	PineconeHost   string `env:"PINECONE_HOST"`
	PineconeAPIKey string `env:"PINECONE_API_KEY"`

	ElevenLabsKey   string `env:"ELEVENLABS_KEY"`
	ElevenLabsVoice string `env:"ELEVENLABS_VOICE"`

	WebflowToken      string `env:"WEBFLOW_TOKEN"`
	WebflowCollection string `env:"WEBFLOW_COLLECTION"`

	SeedURL     string `env:"SEED_URL" envDefault:"https://its-time-to-refokus-v2.webflow.io/blog"`
	CrawlLimit  int    `env:"CRAWL_LIMIT" envDefault:"15"`
	TokenBudget int    `env:"TOKEN_BUDGET" envDefault:"4000"`
	RetrievalK  int    `env:"RETRIEVAL_K" envDefault:"4"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// UsePinecone reports whether the hosted vector index is configured.
func (c *Config) UsePinecone() bool {
	return c.PineconeHost != "" && c.PineconeAPIKey != ""
}

// SpeechEnabled reports whether answers should carry synthesized audio.
func (c *Config) SpeechEnabled() bool {
	return c.ElevenLabsKey != "" && c.ElevenLabsVoice != ""
}
