package msbfs

import "errors"

// ErrTooManySources is returned when more than MaxSources sources are
// requested in a single call: each source occupies one bit of the
// per-vertex frontier bitmask, which is a single uint64 lane.
var ErrTooManySources = errors.New("msbfs: too many sources for one frontier word")
