// Package graph implements a directed graph whose vertices live in a
// slab.Pool. Edges are stored on both endpoints as vertex handles, so
// removing a vertex can drop every incident edge without a scan.
//
// A Graph is not safe for concurrent use.
package graph

import (
	"log/slog"
	"slices"

	"github.com/joshuapare/slabkit/slab"
	"github.com/joshuapare/slabkit/slab/poolid"
)

type vertex[V any] struct {
	value V
	out   []slab.Handle[vertex[V]]
	in    []slab.Handle[vertex[V]]
}

type handle[V any] = slab.Handle[vertex[V]]

// Vertex refers to one vertex of a Graph. It is comparable and can be used as
// a map key. The zero Vertex refers to nothing.
type Vertex[V any] struct {
	h handle[V]
}

// Valid reports whether x was produced by AddVertex.
func (x Vertex[V]) Valid() bool { return !x.h.IsDangling() }

func (x Vertex[V]) String() string { return x.h.String() }

// Options configures the vertex pool of a Graph. A nil *Options selects the
// slab defaults.
type Options struct {
	BlockCapacity int
	IDs           *poolid.Generator
	Logger        *slog.Logger
}

// Graph is a directed graph with values of type V on its vertices.
type Graph[V any] struct {
	vertices *slab.Pool[vertex[V]]
	edges    int
}

// New returns an empty graph.
func New[V any](opts *Options) (*Graph[V], error) {
	popts := &slab.Options[vertex[V]]{}
	if opts != nil {
		popts.BlockCapacity = opts.BlockCapacity
		popts.IDs = opts.IDs
		popts.Logger = opts.Logger
	}
	vertices, err := slab.New(popts)
	if err != nil {
		return nil, err
	}
	return &Graph[V]{vertices: vertices}, nil
}

// Len returns the number of vertices.
func (g *Graph[V]) Len() int { return g.vertices.Len() }

// Edges returns the number of edges.
func (g *Graph[V]) Edges() int { return g.edges }

// Stats exposes the vertex pool statistics.
func (g *Graph[V]) Stats() slab.Stats { return g.vertices.Stats() }

// AddVertex adds an isolated vertex holding v.
func (g *Graph[V]) AddVertex(v V) Vertex[V] {
	return Vertex[V]{h: g.vertices.Alloc(vertex[V]{value: v})}
}

// RemoveVertex removes x and every edge touching it, returning its value.
func (g *Graph[V]) RemoveVertex(x Vertex[V]) (V, bool) {
	vx, ok := g.vertices.Value(x.h)
	if !ok {
		var zero V
		return zero, false
	}

	for _, to := range vx.out {
		if to != x.h {
			g.vertices.Update(to, func(n *vertex[V]) { n.in = without(n.in, x.h) })
		}
		g.edges--
	}
	for _, from := range vx.in {
		if from != x.h {
			g.vertices.Update(from, func(n *vertex[V]) { n.out = without(n.out, x.h) })
			g.edges--
		}
	}

	g.vertices.Free(x.h)
	return vx.value, true
}

// Value returns the value held by x.
func (g *Graph[V]) Value(x Vertex[V]) (V, bool) {
	n, ok := g.vertices.Value(x.h)
	return n.value, ok
}

// Set replaces the value held by x.
func (g *Graph[V]) Set(x Vertex[V], v V) bool {
	return g.vertices.Update(x.h, func(n *vertex[V]) { n.value = v })
}

// Contains reports whether x is a vertex of g.
func (g *Graph[V]) Contains(x Vertex[V]) bool {
	return g.vertices.Contains(x.h)
}

// AddEdge adds the edge from -> to. Adding an existing edge is a no-op.
func (g *Graph[V]) AddEdge(from, to Vertex[V]) error {
	if from.h == to.h {
		var added bool
		ok := g.vertices.Update(from.h, func(n *vertex[V]) {
			if !slices.Contains(n.out, to.h) {
				n.out = append(n.out, to.h)
				n.in = append(n.in, from.h)
				added = true
			}
		})
		if !ok {
			return noVertex(from)
		}
		if added {
			g.edges++
		}
		return nil
	}

	src, dst, ok := g.vertices.UncheckedPair(from.h, to.h)
	if !ok {
		if !g.Contains(from) {
			return noVertex(from)
		}
		return noVertex(to)
	}
	if slices.Contains(src.out, to.h) {
		return nil
	}
	src.out = append(src.out, to.h)
	dst.in = append(dst.in, from.h)
	g.edges++
	return nil
}

// RemoveEdge removes the edge from -> to, reporting whether it existed.
func (g *Graph[V]) RemoveEdge(from, to Vertex[V]) bool {
	if !g.HasEdge(from, to) {
		return false
	}
	g.vertices.Update(from.h, func(n *vertex[V]) { n.out = without(n.out, to.h) })
	g.vertices.Update(to.h, func(n *vertex[V]) { n.in = without(n.in, from.h) })
	g.edges--
	return true
}

// HasEdge reports whether the edge from -> to exists.
func (g *Graph[V]) HasEdge(from, to Vertex[V]) bool {
	n, ok := g.vertices.Value(from.h)
	return ok && slices.Contains(n.out, to.h)
}

// Neighbors returns the targets of x's outgoing edges in insertion order.
func (g *Graph[V]) Neighbors(x Vertex[V]) ([]Vertex[V], bool) {
	n, ok := g.vertices.Value(x.h)
	if !ok {
		return nil, false
	}
	out := make([]Vertex[V], len(n.out))
	for i, h := range n.out {
		out[i] = Vertex[V]{h: h}
	}
	return out, true
}

// Close drops every vertex.
func (g *Graph[V]) Close() {
	g.vertices.Close()
	g.edges = 0
}

func without[V any](hs []handle[V], h handle[V]) []handle[V] {
	return slices.DeleteFunc(hs, func(x handle[V]) bool { return x == h })
}
