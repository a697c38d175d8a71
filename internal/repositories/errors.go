package repositories

import "errors"

// Store-independent faults. Implementations wrap these so callers can match
// them with errors.Is regardless of the backing store.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
