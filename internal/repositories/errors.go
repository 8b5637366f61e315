package repositories

import "errors"

// ErrNotFound reports that a requested record does not exist. Callers detect
// it with errors.Is rather than matching message text.
var ErrNotFound = errors.New("record not found")
