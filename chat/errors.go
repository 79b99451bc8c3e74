package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrModerationRejected means the latest user message was flagged by
	// the moderation endpoint. The pipeline stops before any other call.
	ErrModerationRejected = errors.New("message rejected by moderation")
	// ErrTokenBudgetExceeded means the assembled prompt would meet or
	// exceed the context window budget.
	ErrTokenBudgetExceeded = errors.New("token budget exceeded")
	// ErrEmptyNamespace means the pipeline was built without an index
	// namespace to retrieve from.
	ErrEmptyNamespace = errors.New("index namespace is required")
)

// UpstreamError reports which pipeline stage failed against an external
// service.
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
