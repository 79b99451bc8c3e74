package webflow

import "errors"

var (
	// ErrMissingToken indicates the client was built without an API token.
	ErrMissingToken = errors.New("webflow api token is required")
	// ErrListItems wraps failures while listing collection items.
	ErrListItems = errors.New("listing collection items failed")
)
