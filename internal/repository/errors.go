package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist
// (or has been soft-deleted). Callers check it with errors.Is.
var ErrNotFound = errors.New("not found")
