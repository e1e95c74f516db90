package neighborhood

import "errors"

// ErrInvalidArgument is returned for a negative hop count or an H of 0.
var ErrInvalidArgument = errors.New("neighborhood: invalid argument")
