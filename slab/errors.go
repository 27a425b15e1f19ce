package slab

import "errors"

// Misuse errors. The pool never returns these; it panics with an error that
// wraps one of them, so a recovered value can be matched with errors.Is.
var (
	// ErrForeignHandle indicates a handle was used with a pool other than the one that issued it.
	ErrForeignHandle = errors.New("slab: handle belongs to a different pool")

	// ErrCorruptFreeList indicates the free-list head named an occupied slot.
	ErrCorruptFreeList = errors.New("slab: free list corrupted")

	// ErrBorrowed indicates an access that conflicts with an outstanding view of the same slot.
	ErrBorrowed = errors.New("slab: slot is borrowed")

	// ErrClosed indicates an allocation on a pool that has been closed.
	ErrClosed = errors.New("slab: pool is closed")

	// ErrExhausted indicates the pool ran out of addressable slot indexes.
	ErrExhausted = errors.New("slab: slot index space exhausted")
)

// ErrBadCapacity is returned by New when the block capacity is out of range.
var ErrBadCapacity = errors.New("slab: block capacity out of range")
