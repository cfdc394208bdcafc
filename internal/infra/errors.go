package infra

import "errors"

// ErrNotFound is returned when a write targets a row that does not exist
// (or was already soft-deleted).
var ErrNotFound = errors.New("not found")
