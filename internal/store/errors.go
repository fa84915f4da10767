package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an account insert or update would
// collide on the email login key.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrStorageUnavailable is returned when a collection file exists but cannot
// be parsed. A missing file is not an error; corruption is.
var ErrStorageUnavailable = errors.New("storage unavailable")

// QuotaExceededError is returned when a generation reservation would exceed
// the account's plan limit. It carries the usage so the boundary can prompt
// an upgrade.
type QuotaExceededError struct {
	Used  int
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("generation quota exceeded: %d of %d used", e.Used, e.Limit)
}
