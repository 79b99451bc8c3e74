package chunk

import "errors"

var (
	// ErrInvalidChunkSize is returned when maxChunkSize is not positive.
	ErrInvalidChunkSize = errors.New("max chunk size must be positive")

	// ErrInvalidOverlap is returned when overlapSize is negative or not
	// smaller than maxChunkSize.
	ErrInvalidOverlap = errors.New("overlap must be non-negative and smaller than max chunk size")
)
