// Package linked implements a doubly linked list whose nodes live in a
// slab.Pool and point at each other by handle.
//
// Removing a node returns its slot to the pool, so a list that churns keeps a
// bounded footprint. Elements are only meaningful to the list that produced
// them; passing one to another list panics with slab.ErrForeignHandle.
package linked

import (
	"iter"
	"log/slog"
	"slices"

	"github.com/joshuapare/slabkit/slab"
	"github.com/joshuapare/slabkit/slab/poolid"
)

type node[T any] struct {
	value      T
	prev, next slab.Handle[node[T]]
}

type handle[T any] = slab.Handle[node[T]]

// Elem refers to one element of a List. The zero Elem refers to nothing.
type Elem[T any] struct {
	h handle[T]
}

// Valid reports whether e was produced by a list operation.
func (e Elem[T]) Valid() bool { return !e.h.IsDangling() }

func (e Elem[T]) String() string { return e.h.String() }

// Options configures the node pool of a List. A nil *Options selects the
// slab defaults.
type Options struct {
	BlockCapacity int
	IDs           *poolid.Generator
	Logger        *slog.Logger
}

// List is a doubly linked list. It is not safe for concurrent use.
type List[T any] struct {
	nodes      *slab.Pool[node[T]]
	head, tail handle[T]
}

// New returns an empty list.
func New[T any](opts *Options) (*List[T], error) {
	popts := &slab.Options[node[T]]{}
	if opts != nil {
		popts.BlockCapacity = opts.BlockCapacity
		popts.IDs = opts.IDs
		popts.Logger = opts.Logger
	}
	nodes, err := slab.New(popts)
	if err != nil {
		return nil, err
	}
	return &List[T]{
		nodes: nodes,
		head:  slab.Dangling[node[T]](),
		tail:  slab.Dangling[node[T]](),
	}, nil
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return l.nodes.Len() }

// Stats exposes the node pool statistics.
func (l *List[T]) Stats() slab.Stats { return l.nodes.Stats() }

// Front returns the first element, or false if the list is empty.
func (l *List[T]) Front() (Elem[T], bool) {
	return Elem[T]{h: l.head}, !l.head.IsDangling()
}

// Back returns the last element, or false if the list is empty.
func (l *List[T]) Back() (Elem[T], bool) {
	return Elem[T]{h: l.tail}, !l.tail.IsDangling()
}

// PushFront inserts v at the front.
func (l *List[T]) PushFront(v T) Elem[T] {
	return l.insertBetween(v, slab.Dangling[node[T]](), l.head)
}

// PushBack inserts v at the back.
func (l *List[T]) PushBack(v T) Elem[T] {
	return l.insertBetween(v, l.tail, slab.Dangling[node[T]]())
}

// InsertAfter inserts v right after mark. It returns false if mark is no
// longer in the list.
func (l *List[T]) InsertAfter(v T, mark Elem[T]) (Elem[T], bool) {
	n, ok := l.nodes.Value(mark.h)
	if !ok {
		return Elem[T]{}, false
	}
	return l.insertBetween(v, mark.h, n.next), true
}

// InsertBefore inserts v right before mark. It returns false if mark is no
// longer in the list.
func (l *List[T]) InsertBefore(v T, mark Elem[T]) (Elem[T], bool) {
	n, ok := l.nodes.Value(mark.h)
	if !ok {
		return Elem[T]{}, false
	}
	return l.insertBetween(v, n.prev, mark.h), true
}

// Remove unlinks e and returns its value. It returns false if e is no longer
// in the list.
func (l *List[T]) Remove(e Elem[T]) (T, bool) {
	n, ok := l.nodes.Value(e.h)
	if !ok {
		var zero T
		return zero, false
	}
	l.link(n.prev, n.next)
	l.nodes.Free(e.h)
	return n.value, true
}

// MoveToFront moves e to the front. It returns false if e is no longer in
// the list.
func (l *List[T]) MoveToFront(e Elem[T]) bool {
	n, ok := l.nodes.Value(e.h)
	if !ok {
		return false
	}
	if e.h == l.head {
		return true
	}
	l.link(n.prev, n.next)
	old := l.head
	l.link(slab.Dangling[node[T]](), e.h)
	l.link(e.h, old)
	return true
}

// Next returns the element after e, or false at the end of the list.
func (l *List[T]) Next(e Elem[T]) (Elem[T], bool) {
	n, ok := l.nodes.Value(e.h)
	if !ok || n.next.IsDangling() {
		return Elem[T]{}, false
	}
	return Elem[T]{h: n.next}, true
}

// Prev returns the element before e, or false at the start of the list.
func (l *List[T]) Prev(e Elem[T]) (Elem[T], bool) {
	n, ok := l.nodes.Value(e.h)
	if !ok || n.prev.IsDangling() {
		return Elem[T]{}, false
	}
	return Elem[T]{h: n.prev}, true
}

// Value returns the value stored at e.
func (l *List[T]) Value(e Elem[T]) (T, bool) {
	n, ok := l.nodes.Value(e.h)
	return n.value, ok
}

// Set replaces the value stored at e.
func (l *List[T]) Set(e Elem[T], v T) bool {
	return l.nodes.Update(e.h, func(n *node[T]) { n.value = v })
}

// All yields values front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := l.head; !h.IsDangling(); {
			n, _ := l.nodes.Value(h)
			if !yield(n.value) {
				return
			}
			h = n.next
		}
	}
}

// Backward yields values back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for h := l.tail; !h.IsDangling(); {
			n, _ := l.nodes.Value(h)
			if !yield(n.value) {
				return
			}
			h = n.prev
		}
	}
}

// Values returns the values front to back.
func (l *List[T]) Values() []T {
	return slices.Collect(l.All())
}

// Close drops every node.
func (l *List[T]) Close() {
	l.nodes.Close()
	l.head = slab.Dangling[node[T]]()
	l.tail = slab.Dangling[node[T]]()
}

func (l *List[T]) insertBetween(v T, prev, next handle[T]) Elem[T] {
	h := l.nodes.Alloc(node[T]{
		value: v,
		prev:  slab.Dangling[node[T]](),
		next:  slab.Dangling[node[T]](),
	})
	l.link(prev, h)
	l.link(h, next)
	return Elem[T]{h: h}
}

// link makes b follow a. A dangling side stands for the list end, in which
// case head or tail is updated instead.
func (l *List[T]) link(a, b handle[T]) {
	if a.IsDangling() {
		l.head = b
	}
	if b.IsDangling() {
		l.tail = a
	}

	switch {
	case !a.IsDangling() && !b.IsDangling():
		na, nb, _ := l.nodes.UncheckedPair(a, b)
		na.next = b
		nb.prev = a
	case !a.IsDangling():
		l.nodes.Update(a, func(n *node[T]) { n.next = b })
	case !b.IsDangling():
		l.nodes.Update(b, func(n *node[T]) { n.prev = a })
	}
}
