package slab

import "fmt"

// Ref is a shared view of a live value, obtained from Pool.Get. Any number of
// Refs to a slot may be outstanding at once, but none while a Mut to the same
// slot is. Release it when done; the slot cannot be freed or mutably borrowed
// until every view is released.
type Ref[T any] struct {
	e *entry[T]
	h Handle[T]
}

// Value returns a copy of the viewed value.
func (r *Ref[T]) Value() T { return r.e.value }

// Ptr returns a pointer to the viewed value. It must not be written through.
func (r *Ref[T]) Ptr() *T { return &r.e.value }

// Handle converts the view back into the handle it was obtained with.
func (r *Ref[T]) Handle() Handle[T] { return r.h }

// Release ends the view. Releasing twice is a no-op.
func (r *Ref[T]) Release() {
	if r.e == nil {
		return
	}
	r.e.borrow--
	r.e = nil
}

// Mut is an exclusive view of a live value, obtained from Pool.GetMut. While
// it is outstanding no other view of the slot can be taken.
type Mut[T any] struct {
	e *entry[T]
	h Handle[T]
}

// Ptr returns a pointer to the value for in-place mutation.
func (m *Mut[T]) Ptr() *T { return &m.e.value }

// Value returns a copy of the value.
func (m *Mut[T]) Value() T { return m.e.value }

// Set replaces the value.
func (m *Mut[T]) Set(v T) { m.e.value = v }

// Handle converts the view back into the handle it was obtained with.
func (m *Mut[T]) Handle() Handle[T] { return m.h }

// Release ends the view. Releasing twice is a no-op.
func (m *Mut[T]) Release() {
	if m.e == nil {
		return
	}
	m.e.borrow = 0
	m.e = nil
}

// Get returns a shared view of the value h names, or false if there is none.
// It panics if h belongs to another pool or the slot is mutably borrowed.
func (p *Pool[T]) Get(h Handle[T]) (*Ref[T], bool) {
	e := p.share(h)
	if e == nil {
		return nil, false
	}
	return &Ref[T]{e: e, h: h}, true
}

// GetMut returns an exclusive view of the value h names, or false if there is
// none. It panics if h belongs to another pool or any view of the slot is
// outstanding.
func (p *Pool[T]) GetMut(h Handle[T]) (*Mut[T], bool) {
	e := p.exclusive(h)
	if e == nil {
		return nil, false
	}
	return &Mut[T]{e: e, h: h}, true
}

// View calls fn with a read-only pointer to the value h names, holding a
// shared view for the duration of the call. It returns false without calling
// fn if h names no live value.
func (p *Pool[T]) View(h Handle[T], fn func(v *T)) bool {
	e := p.share(h)
	if e == nil {
		return false
	}
	defer func() { e.borrow-- }()
	fn(&e.value)
	return true
}

// Update calls fn with a pointer to the value h names, holding an exclusive
// view for the duration of the call. It returns false without calling fn if h
// names no live value.
func (p *Pool[T]) Update(h Handle[T], fn func(v *T)) bool {
	e := p.exclusive(h)
	if e == nil {
		return false
	}
	defer func() { e.borrow = 0 }()
	fn(&e.value)
	return true
}

// Value returns a copy of the value h names.
func (p *Pool[T]) Value(h Handle[T]) (T, bool) {
	e := p.lookup(h)
	if e == nil {
		var zero T
		return zero, false
	}
	if e.borrow == exclusiveBorrow {
		panic(fmt.Errorf("%w: read of %s while mutably borrowed", ErrBorrowed, h))
	}
	return e.value, true
}

// Contains reports whether h names a live value in p.
func (p *Pool[T]) Contains(h Handle[T]) bool {
	return p.lookup(h) != nil
}

func (p *Pool[T]) share(h Handle[T]) *entry[T] {
	e := p.lookup(h)
	if e == nil {
		return nil
	}
	if e.borrow == exclusiveBorrow {
		panic(fmt.Errorf("%w: shared view of %s while mutably borrowed", ErrBorrowed, h))
	}
	e.borrow++
	return e
}

func (p *Pool[T]) exclusive(h Handle[T]) *entry[T] {
	e := p.lookup(h)
	if e == nil {
		return nil
	}
	if e.borrow != 0 {
		panic(fmt.Errorf("%w: exclusive view of %s while borrowed", ErrBorrowed, h))
	}
	e.borrow = exclusiveBorrow
	return e
}
