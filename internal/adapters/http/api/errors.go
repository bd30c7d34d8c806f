package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadNumber   = errors.New("player number must be a positive integer")
	ErrMissingClub = errors.New("missing club query parameter")
	ErrNoLogo      = errors.New("no logo for club")
)
