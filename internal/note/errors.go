package note

import "errors"

// Errors returned by note operations.
var (
	// ErrEmptyDelimiter indicates a Searcher was requested for an empty delimiter.
	ErrEmptyDelimiter = errors.New("note delimiter must not be empty")
)
