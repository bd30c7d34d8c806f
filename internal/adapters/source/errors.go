package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrEmptyLocation = errors.New("empty source location")
	ErrFetch         = errors.New("fetch source failed")
	ErrDecode        = errors.New("decode source failed")
	ErrMissingColumn = errors.New("missing required column")
)
