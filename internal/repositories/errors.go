package repositories

import "errors"

// ErrNotFound is wrapped by every repository lookup that misses, so
// handlers can answer an explicit 404 instead of a server error.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is wrapped when an insert trips a unique constraint,
// so callers can answer a conflict instead of a server error. Relies
// on the connection being opened with gorm's TranslateError.
var ErrDuplicate = errors.New("duplicate record")
