package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services can translate them into domain errors.
//
// These represent factual states about rows, not validation failures:
// - ErrNotFound: row does not exist, or a referenced row is absent
// - ErrAlreadyUsed: a unique constraint already holds the key
// - ErrVersionConflict: the stored version differs from the caller's
// - ErrImmutable: the row may never be modified or removed
// - ErrInvalidState: row in wrong state for requested operation
// - ErrInvalidValue: storage rejected a value through a check constraint
// - ErrUnavailable: storage temporarily unavailable or the deadline passed
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyUsed     = errors.New("already used")
	ErrVersionConflict = errors.New("version conflict")
	ErrImmutable       = errors.New("immutable record")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnavailable     = errors.New("unavailable")
)
