package ledger

import "errors"

var (
	// ErrUserNotFound means the progress record does not exist. Records are
	// created at registration and never fabricated here.
	ErrUserNotFound = errors.New("user progress not found")

	// ErrPersistenceUnavailable is wrapped around every storage failure by
	// Store implementations.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")

	// ErrConflict is returned by compare-and-swap writes when the stored
	// revision moved since the record was loaded.
	ErrConflict = errors.New("progress record changed concurrently")

	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidAward    = errors.New("invalid award")
)
