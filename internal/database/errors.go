package database

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by repositories. Handlers match on these with
// errors.Is to pick the HTTP status; anything else is an internal failure.
var (
	// ErrNotFound indicates the referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail indicates the accounts unique email index rejected
	// an insert. Concurrent registrations with the same email both pass the
	// pre-check; the index failure is the authoritative signal.
	ErrDuplicateEmail = errors.New("email already registered")
)

// uniqueViolation is the Postgres error code for unique_violation
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
