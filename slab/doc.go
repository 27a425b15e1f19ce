// Package slab provides a typed object pool with per-object deallocation.
//
// # Overview
//
// A Pool[T] stores values in fixed-size blocks and names each stored value
// with a Handle[T]. Freeing a value pushes its slot onto an intrusive free
// list; the next allocation pops it again. Blocks are appended when the free
// list runs dry and are never moved, compacted or removed, so a value keeps
// its address for as long as it lives.
//
// # Pool Interface
//
//   - Alloc(value): store a value, growing by one block if needed
//   - Free(h): release a value; false if h names nothing
//   - Get(h) / GetMut(h): checked shared / exclusive views
//   - View(h, fn) / Update(h, fn): scoped forms of Get and GetMut
//   - Unchecked(h) / UncheckedPair(a, b): raw pointers, caller-managed exclusivity
//
// # Usage Example
//
//	p := slab.MustNew[float64](nil)
//
//	h := p.Alloc(3.14)
//	p.Update(h, func(v *float64) { *v = 2.7 })
//
//	v, ok := p.Value(h) // 2.7, true
//
//	p.Free(h)           // true
//	_, ok = p.Value(h)  // false
//
// # Block Growth
//
// A pool starts with no blocks. Allocating k*BlockCapacity values without
// freeing produces exactly k blocks; the next allocation appends block k+1.
// A new block's slots are threaded first to last onto the free list, so a
// fresh pool hands out slots 0, 1, 2, ... in order. Reuse is LIFO: the most
// recently freed slot is allocated next.
//
// # Handles
//
// A handle is (slot, pool ID, generation). Handles compare with ==, work as
// map keys, sort with Compare (by slot) and hash with Hash (by slot). Every
// operation first checks the handle's pool ID against the pool's own; a
// mismatch is a programming error and panics with ErrForeignHandle.
// Dangling() is a sentinel that every pool reports as not found.
//
// # Stale Handles
//
// By default a handle to a freed slot becomes indistinguishable from the
// handle of whatever is allocated there next. Options.Generations adds a
// per-slot generation that is bumped on free and checked on access, turning
// such stale handles into not-found.
//
// # Errors
//
// Expected absence is reported with a false result. Misuse (foreign handle,
// conflicting views, allocation after Close, a corrupted free list) panics
// with an error wrapping one of the Err* sentinels.
//
// # Thread Safety
//
// Pool instances are not thread-safe. Callers must synchronize access
// externally. Only the identity generator in slab/poolid is shared.
//
// # Related Packages
//
//   - github.com/joshuapare/slabkit/slab/poolid: Pool identity generator
//   - github.com/joshuapare/slabkit/slab/linked: Doubly linked list on a pool
//   - github.com/joshuapare/slabkit/slab/graph: Directed graph on a pool
//   - github.com/joshuapare/slabkit/slab/metrics: Prometheus collector for pool stats
package slab
