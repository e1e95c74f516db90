package watcher

import "errors"

// ErrInvalidArgument is returned by New for a non-positive capacity, a
// percentageChange outside (0, 1], or a non-positive minNodeCount.
var ErrInvalidArgument = errors.New("watcher: invalid argument")
