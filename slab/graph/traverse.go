package graph

import (
	"fmt"
	"slices"
	"sync"

	"github.com/eapache/queue"
)

// scratch is per-traversal state. Vertices of one graph share a pool, so a
// slot index identifies a live vertex for the duration of a traversal.
type scratch struct {
	seen   map[uint32]struct{}
	parent map[uint32]any
	q      *queue.Queue
}

var scratchPool = sync.Pool{}

// acquireScratch returns empty traversal state from the pool or creates it.
func acquireScratch() *scratch {
	if v := scratchPool.Get(); v != nil {
		return v.(*scratch)
	}
	return &scratch{
		seen:   make(map[uint32]struct{}),
		parent: make(map[uint32]any),
		q:      queue.New(),
	}
}

// releaseScratch empties s and returns it to the pool.
func releaseScratch(s *scratch) {
	if s == nil {
		return
	}
	clear(s.seen)
	clear(s.parent)
	for s.q.Length() > 0 {
		s.q.Remove()
	}
	scratchPool.Put(s)
}

type step[V any] struct {
	h     handle[V]
	depth int
}

// BFS visits every vertex reachable from start in breadth-first order,
// passing its depth (start is 0). Returning false from visit stops the walk.
func (g *Graph[V]) BFS(start Vertex[V], visit func(x Vertex[V], depth int) bool) error {
	return g.bfs(start, nil, visit)
}

// Reachable reports whether a path from -> to exists. Every vertex reaches
// itself.
func (g *Graph[V]) Reachable(from, to Vertex[V]) (bool, error) {
	if !g.Contains(to) {
		return false, noVertex(to)
	}
	found := false
	err := g.BFS(from, func(x Vertex[V], _ int) bool {
		found = x == to
		return !found
	})
	return found, err
}

// ShortestPath returns a path from -> to with the fewest edges, both ends
// included. It returns ErrNoPath when to is unreachable.
func (g *Graph[V]) ShortestPath(from, to Vertex[V]) ([]Vertex[V], error) {
	if !g.Contains(to) {
		return nil, noVertex(to)
	}

	var path []Vertex[V]
	err := g.bfs(from, func(s *scratch) {
		if _, ok := s.seen[to.h.Slot()]; !ok {
			return
		}
		for h := to.h; ; {
			path = append(path, Vertex[V]{h: h})
			p, ok := s.parent[h.Slot()]
			if !ok {
				break
			}
			h = p.(handle[V])
		}
		slices.Reverse(path)
	}, func(x Vertex[V], _ int) bool {
		return x != to
	})
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, fmt.Errorf("%w: %s -> %s", ErrNoPath, from, to)
	}
	return path, nil
}

// bfs runs the walk. done, if set, sees the traversal state before it is
// released.
func (g *Graph[V]) bfs(start Vertex[V], done func(*scratch), visit func(Vertex[V], int) bool) error {
	if !g.Contains(start) {
		return noVertex(start)
	}

	s := acquireScratch()
	defer releaseScratch(s)

	s.seen[start.h.Slot()] = struct{}{}
	s.q.Add(step[V]{h: start.h})

	for s.q.Length() > 0 {
		cur := s.q.Remove().(step[V])
		if !visit(Vertex[V]{h: cur.h}, cur.depth) {
			break
		}
		n, _ := g.vertices.Value(cur.h)
		for _, next := range n.out {
			if _, ok := s.seen[next.Slot()]; ok {
				continue
			}
			s.seen[next.Slot()] = struct{}{}
			s.parent[next.Slot()] = cur.h
			s.q.Add(step[V]{h: next, depth: cur.depth + 1})
		}
	}

	if done != nil {
		done(s)
	}
	return nil
}
