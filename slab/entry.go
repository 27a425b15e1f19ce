package slab

import "math"

// noSlot terminates the free list. It is never a valid slot index.
const noSlot uint32 = math.MaxUint32

// exclusiveBorrow marks an entry with an outstanding Mut.
const exclusiveBorrow int32 = -1

type slotState uint8

const (
	vacant slotState = iota
	occupied
)

// entry is one slot. A vacant entry is a link in the free list (next); an
// occupied entry holds value. The zero entry is vacant.
type entry[T any] struct {
	value T
	next  uint32
	gen   uint32

	// borrow counts outstanding Refs, or holds exclusiveBorrow while a Mut
	// is outstanding. Only the checked access path touches it.
	borrow int32
	state  slotState
}

// newBlock allocates a block of capacity vacant entries whose global slot
// indexes start at base. The entries are threaded first to last and the last
// one links to tail, so the returned head (base) walks the whole block before
// continuing with the previous list.
func newBlock[T any](base, capacity, tail uint32) (uint32, []entry[T]) {
	block := make([]entry[T], capacity)
	last := capacity - 1
	for i := range last {
		block[i].next = base + i + 1
	}
	block[last].next = tail
	return base, block
}
