package catalog

import "errors"

// Sentinel errors returned when a catalog fails validation.
var (
	ErrDuplicateTitle = errors.New("duplicate document title")
	ErrEmptyTitle     = errors.New("document title is required")
	ErrEmptyURL       = errors.New("document url is required")
)
