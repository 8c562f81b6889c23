package core

import "errors"

// Error kinds produced by the domain rules. They are returned to the
// immediate caller, never retried or swallowed; the HTTP layer translates
// them to status codes.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("operation not permitted for this actor")
	ErrInvalidState      = errors.New("project is not in a valid state for this operation")
	ErrInvalidScore      = errors.New("criterion score out of range")
	ErrConflict          = errors.New("evaluation already exists for this project")
	ErrImmutable         = errors.New("record is completed and can no longer change")
	ErrNotFound          = errors.New("record not found")
)
