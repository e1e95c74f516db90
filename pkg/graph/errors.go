package graph

import "errors"

var (
	// ErrInvalidState is returned when a NodeIterator's Successors method
	// is called before the iterator has been advanced at least once, or
	// after it has been exhausted.
	ErrInvalidState = errors.New("graph: invalid iterator state")

	// ErrInvalidArgument is not returned by any MutableGraph method: ids
	// are not range-checked, and Outdegree and Successors report no
	// successors for an id absent from the graph.
	ErrInvalidArgument = errors.New("graph: invalid argument")
)
