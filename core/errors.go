package core

import "errors"

// Error sentinels shared by every package built on the core object runtime.
// Queue, workerpool and task all return these directly rather than minting
// their own near-duplicate errors, so a caller can use errors.Is regardless
// of which subsystem produced the error.
var (
	// ErrInvalidHandle is returned when a handle is unknown, has already
	// been discarded, or does not match the class prefix the caller asked
	// for.
	ErrInvalidHandle = errors.New("core: invalid handle")

	// ErrOutOfMemory is part of the error taxonomy carried over from the
	// source API; Go's runtime turns real allocation failures into a fatal
	// panic rather than a recoverable error, so no constructor in this
	// module actually returns it. It is kept so status-taxonomy switches
	// written against this package stay exhaustive.
	ErrOutOfMemory = errors.New("core: out of memory")

	// ErrShutdown is returned when an operation is refused because its
	// container (a Queue or a Pool) is no longer RUNNING.
	ErrShutdown = errors.New("core: shutdown")

	// ErrTimeout is returned when a bounded wait expires before its
	// condition is satisfied.
	ErrTimeout = errors.New("core: timeout")
)
