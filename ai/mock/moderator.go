package mock

import "context"

// MockModerator is a test double for ai.Moderator.
type MockModerator struct {
	// CheckFunc is called by Check if set. If nil, every text passes.
	CheckFunc func(ctx context.Context, text string) (bool, error)

	callCount int
}

// NewMockModerator creates a mock moderator that flags nothing.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockModerator() *MockModerator {
	return &MockModerator{}
}

// Check returns the injected verdict, or false when none is set.
func (m *MockModerator) Check(ctx context.Context, text string) (bool, error) {
	m.callCount++

	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, text)
	}
	return false, nil
}

// CallCount returns the number of Check invocations.
func (m *MockModerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockModerator) Reset() {
	m.callCount = 0
	m.CheckFunc = nil
}
