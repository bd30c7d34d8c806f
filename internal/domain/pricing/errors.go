package pricing

import "errors"

// Sentinel kinds for pricing errors.
var (
	ErrUnknownMode = errors.New("unknown price source")
)
