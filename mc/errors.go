package mc

import "errors"

// Error taxonomy. All of these are fatal: the engine performs no retries and
// no partial rollback, and a failure in any pipeline stage aborts the run.
var (
	// ErrInvalidParameter reports malformed constructor input, such as a
	// movement range that is not [low, high] or a non-positive temperature.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrConfigurationMismatch reports parallel lists of different lengths,
	// such as samplers versus weights.
	ErrConfigurationMismatch = errors.New("configuration mismatch")

	// ErrInvalidSelection reports that a TagSelector cannot satisfy the
	// requested tag count.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrResourceConflict reports a file-backed observer targeting an
	// existing path without force-overwrite.
	ErrResourceConflict = errors.New("resource conflict")
)
