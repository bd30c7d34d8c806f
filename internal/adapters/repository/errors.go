package repository

import "errors"

// Sentinel kinds for deck store errors.
var (
	ErrEmpty    = errors.New("no deck published")
	ErrNotFound = errors.New("card not found")
	ErrNilDeck  = errors.New("nil snapshot")
)
