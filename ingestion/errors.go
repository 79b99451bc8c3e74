package ingestion

import "errors"

var (
	// ErrEmptyNamespace means the ingestor was built without a target
	// index namespace.
	ErrEmptyNamespace = errors.New("index namespace is required")
	// ErrNothingToIngest means no documents were given.
	ErrNothingToIngest = errors.New("no documents to ingest")
	// ErrAllDocumentsFailed means every document in the run failed to
	// index. Partial failures are reported in Stats instead.
	ErrAllDocumentsFailed = errors.New("all documents failed to index")
)
