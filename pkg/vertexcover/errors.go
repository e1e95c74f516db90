package vertexcover

import "errors"

// ErrMissingTranspose is returned by DeleteEdge when the caller passes a
// nil transpose provider: deleting an arc can require re-scanning every
// incoming edge to the deleted endpoints, which is only cheap to do
// against the transposed graph.
var ErrMissingTranspose = errors.New("vertexcover: delete requires a transpose graph")
