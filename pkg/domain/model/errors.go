package model

import "errors"

// Error taxonomy of the case engine. Every failure surfaced by the
// engine wraps one of these sentinels so that callers can map them to
// an actionable response without string matching.
var (
	// ErrValidation marks malformed or missing input: classification
	// fields, comment bounds, oversize attachments.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks an actor whose role lacks authority for the
	// requested mutation. Never downgraded to a silent no-op.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition marks a target status unreachable from the
	// current status via the attempted pathway.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConcurrencyConflict marks an optimistic update that lost the
	// race against another transition. The caller retries with fresh
	// state; the engine never retries internally.
	ErrConcurrencyConflict = errors.New("concurrent transition conflict")

	// ErrNotFound marks a lookup for an entity that does not exist.
	// Repositories wrap this sentinel so that a missing record can be
	// told apart from a backend fault.
	ErrNotFound = errors.New("not found")
)
