// Package openai implements the ai interfaces against OpenAI-compatible
// APIs: embeddings and chat completions through langchaingo, moderation
// through the provider's REST endpoint directly.
package openai
