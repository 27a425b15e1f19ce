package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrNoVertex indicates a vertex that is not (or no longer) part of the graph.
	ErrNoVertex = errors.New("graph: no such vertex")

	// ErrNoPath indicates that the target is unreachable from the source.
	ErrNoPath = errors.New("graph: no path")
)

func noVertex[V any](x Vertex[V]) error {
	return fmt.Errorf("%w: %s", ErrNoVertex, x)
}
