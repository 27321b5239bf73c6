package contract

import "errors"

// Error kinds surfaced by the pipeline. Callers match them with errors.Is.
var (
	ErrMissingFile    = errors.New("missing input file")
	ErrMalformedTable = errors.New("malformed table")
	ErrOutputWrite    = errors.New("output write failure")
	ErrInvalidConfig  = errors.New("invalid configuration")
)
