package search

import "errors"

// Error values for index operations.
var (
	ErrNilCatalog = errors.New("catalog is required")
	ErrNotBuilt   = errors.New("search index not built")
	ErrClosed     = errors.New("search index closed")
)
