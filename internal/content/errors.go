package content

import "errors"

// ErrNotFound is returned when a referenced record id or slug does not exist.
var ErrNotFound = errors.New("record not found")
