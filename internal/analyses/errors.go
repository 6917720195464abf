package analyses

import "errors"

// ErrNotFound indicates the record does not exist or belongs to another user.
var ErrNotFound = errors.New("analysis not found")
