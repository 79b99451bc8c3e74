// Package ai provides abstractions for the AI services used by boredGPT.
//
// It defines interfaces for text embeddings, chat completions, and content
// moderation, so the retrieval and chat pipelines depend on abstractions
// rather than concrete provider clients.
//
// # Implementation Packages
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; constructors in ai/mock return concrete types so tests can
// inject behavior and assert call counts.
package ai
