package codec

import "errors"

var (
	// ErrIO wraps an underlying file-system error (typically an
	// *os.PathError); callers should check errors.As for the path.
	ErrIO = errors.New("codec: io error")

	// ErrInvalidArgument is returned for a malformed properties file or
	// an inconsistent offsets/graph pair.
	ErrInvalidArgument = errors.New("codec: invalid argument")
)
