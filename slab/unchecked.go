package slab

import "fmt"

// Unchecked returns a raw pointer to the value h names, without taking a
// view. The pool identity is still validated, so a foreign handle panics.
//
// The caller is responsible for exclusivity: nothing else may write the value
// while the pointer is used, and the slot must not be freed nor the pool
// closed until the caller is done with it. Outstanding checked views are not
// consulted.
func (p *Pool[T]) Unchecked(h Handle[T]) (*T, bool) {
	e := p.lookup(h)
	if e == nil {
		return nil, false
	}
	return &e.value, true
}

// UncheckedPair returns raw pointers to two distinct live values at once,
// typically to cross-link two nodes. It returns false if either handle names
// no live value and panics if both name the same slot. The caveats of
// Unchecked apply to both pointers.
func (p *Pool[T]) UncheckedPair(a, b Handle[T]) (*T, *T, bool) {
	if a.pool == b.pool && a.slot == b.slot && !a.IsDangling() {
		panic(fmt.Errorf("%w: UncheckedPair aliases %s", ErrBorrowed, a))
	}
	ea := p.lookup(a)
	eb := p.lookup(b)
	if ea == nil || eb == nil {
		return nil, nil, false
	}
	return &ea.value, &eb.value, true
}
