// Package mock provides test doubles for the ai interfaces.
//
// Mocks default to deterministic behavior (hash-derived embeddings, scripted
// completions, clean moderation verdicts) and track call counts so pipeline
// tests can assert that stages short-circuit without touching the network.
package mock
