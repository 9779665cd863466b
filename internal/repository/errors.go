package repository

import "errors"

// ErrNotFound is returned by lookups when no record matches, regardless of
// backing store.
var ErrNotFound = errors.New("record not found")
