package mock

import "github.com/beogip/boredGPT/ai"

// MockProvider aggregates mock AI services for tests.
type MockProvider struct {
	embedder  *MockEmbedder
	generator *MockGenerator
	moderator *MockModerator
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider wired with fresh mocks.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		generator: NewMockGenerator(),
		moderator: NewMockModerator(),
	}
}

// Embedder returns the mock embedder as the interface type.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generator as the interface type.
func (p *MockProvider) Generator() ai.Generator {
	return p.generator
}

// Moderator returns the mock moderator as the interface type.
func (p *MockProvider) Moderator() ai.Moderator {
	return p.moderator
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete embedder for assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockGenerator returns the concrete generator for assertions.
func (p *MockProvider) GetMockGenerator() *MockGenerator {
	return p.generator
}

// GetMockModerator returns the concrete moderator for assertions.
func (p *MockProvider) GetMockModerator() *MockModerator {
	return p.moderator
}
