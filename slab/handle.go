package slab

import (
	"cmp"
	"strconv"

	"github.com/joshuapare/slabkit/slab/poolid"
)

// Handle names one slot of one pool. It is a plain value: it can be copied,
// compared with ==, used as a map key, sorted and stored inside other pooled
// values. It owns nothing; after the slot is freed it simply names nothing
// until the slot is reused.
//
// Two handles are equal when slot, pool and generation all match. The
// generation is always zero unless the pool was built with Generations.
type Handle[T any] struct {
	slot uint32
	gen  uint32
	pool poolid.ID
}

// Dangling returns the sentinel handle. Every pool reports it as not found;
// it is meant for "no target yet" fields such as list ends.
//
// The zero Handle also carries the reserved pool ID and behaves the same way.
func Dangling[T any]() Handle[T] {
	return Handle[T]{slot: noSlot, pool: poolid.Dangling}
}

// IsDangling reports whether h carries the reserved pool ID.
func (h Handle[T]) IsDangling() bool { return h.pool == poolid.Dangling }

// Slot returns the global slot index h names.
func (h Handle[T]) Slot() uint32 { return h.slot }

// Pool returns the ID of the pool that issued h.
func (h Handle[T]) Pool() poolid.ID { return h.pool }

// Generation returns the slot generation h was issued under.
func (h Handle[T]) Generation() uint32 { return h.gen }

// Less orders by slot index only.
func (h Handle[T]) Less(o Handle[T]) bool { return h.slot < o.slot }

// Hash returns a hash of the slot index. Handles of different pools that name
// the same slot collide; equality tells them apart.
func (h Handle[T]) Hash() uint64 {
	// splitmix64 finalizer
	x := uint64(h.slot)
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func (h Handle[T]) String() string {
	if h.IsDangling() {
		return "dangling"
	}
	s := strconv.FormatUint(uint64(h.slot), 10) + "@" + h.pool.String()
	if h.gen != 0 {
		s += "/g" + strconv.FormatUint(uint64(h.gen), 10)
	}
	return s
}

// Compare orders handles by slot index, for slices.SortFunc and ordered
// containers. Handles from different pools with the same slot compare equal
// here even though == tells them apart.
func Compare[T any](a, b Handle[T]) int {
	return cmp.Compare(a.slot, b.slot)
}
