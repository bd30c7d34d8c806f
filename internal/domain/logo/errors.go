package logo

import "errors"

// Sentinel kinds for logo map errors.
var (
	ErrEmptyKey = errors.New("logo map: empty club name")
	ErrEmptyURL = errors.New("logo map: empty logo url")
	ErrNoMap    = errors.New("logo map: nil map")
)
