package errs

import (
	"errors"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrItemNotAvailable = errors.New("item is not available")
	ErrNoActiveLoan     = errors.New("no active loan")
	ErrConflict         = errors.New("already exists")
)
