package slab

import "github.com/joshuapare/slabkit/slab/poolid"

// counters holds running totals since the pool was created.
type counters struct {
	allocs uint64
	frees  uint64
	grows  uint64
}

// Stats is a snapshot of pool occupancy and activity.
type Stats struct {
	Pool          poolid.ID
	Blocks        int    // Blocks allocated
	BlockCapacity int    // Slots per block
	Live          int    // Occupied slots
	Vacant        int    // Slots on the free list
	Allocs        uint64 // Alloc calls
	Frees         uint64 // Successful Free calls
	Grows         uint64 // Blocks appended; stays at its last value after Close
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	slots := len(p.blocks) * int(p.capacity)
	return Stats{
		Pool:          p.id,
		Blocks:        len(p.blocks),
		BlockCapacity: int(p.capacity),
		Live:          p.live,
		Vacant:        slots - p.live,
		Allocs:        p.stats.allocs,
		Frees:         p.stats.frees,
		Grows:         p.stats.grows,
	}
}
