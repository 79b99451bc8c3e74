package mock

import (
	"context"

	"github.com/beogip/boredGPT/core"
)

// MockGenerator is a test double for ai.Generator. It replays a scripted
// sequence of responses and records every prompt it receives.
type MockGenerator struct {
	// GenerateFunc is called by GenerateText if set.
	GenerateFunc func(ctx context.Context, messages []core.Message) (string, error)

	// Responses are returned in order when GenerateFunc is nil. Once
	// exhausted the last response repeats.
	Responses []string

	calls     [][]core.Message
	callCount int
}

// NewMockGenerator creates a mock generator that replays the given
// responses. Note: Returns concrete type to allow test assertions.
func NewMockGenerator(responses ...string) *MockGenerator {
	return &MockGenerator{Responses: responses}
}

// GenerateText records the prompt and returns the next scripted response.
func (m *MockGenerator) GenerateText(ctx context.Context, messages []core.Message) (string, error) {
	snapshot := make([]core.Message, len(messages))
	copy(snapshot, messages)
	m.calls = append(m.calls, snapshot)
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}

	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := m.callCount - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}

// CallCount returns the number of GenerateText invocations.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Calls returns the recorded prompts, one message slice per invocation.
func (m *MockGenerator) Calls() [][]core.Message {
	return m.calls
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.calls = nil
	m.callCount = 0
	m.GenerateFunc = nil
}
