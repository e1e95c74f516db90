package hll

import "errors"

// Sentinel errors returned by the packed counter array. Callers should use
// errors.Is against these, since the array wraps them with call-site context.
var (
	// ErrInvalidArgument is returned for a negative AddCounters request, a
	// shrink request, or a log2m outside [4,30].
	ErrInvalidArgument = errors.New("hll: invalid argument")

	// ErrIncompatibleShape is returned by Union when the two counter arrays
	// were not built with the same log2m, registerSize and seed.
	ErrIncompatibleShape = errors.New("hll: incompatible counter array shapes")
)
