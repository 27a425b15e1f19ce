package slab

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/slabkit/slab/poolid"
)

// Pool stores values of type T in fixed-size blocks and hands out handles to
// them. Storage is never moved once allocated: a pointer obtained through the
// pool stays valid until its slot is freed or the pool is closed.
//
// A Pool is not safe for concurrent use.
type Pool[T any] struct {
	blocks   [][]entry[T]
	capacity uint32
	head     uint32 // first vacant slot, noSlot when the free list is empty
	id       poolid.ID
	live     int
	closed   bool

	gens    bool
	release func(*T)
	log     *slog.Logger

	stats counters
}

// New creates an empty pool. No storage is allocated until the first Alloc.
func New[T any](opts *Options[T]) (*Pool[T], error) {
	capacity, err := opts.blockCapacity()
	if err != nil {
		return nil, err
	}

	p := &Pool[T]{
		capacity: capacity,
		head:     noSlot,
		id:       opts.generator().Generate(),
		log:      opts.logger(),
	}
	if opts != nil {
		p.gens = opts.Generations
		p.release = opts.Release
	}
	return p, nil
}

// MustNew is like New but panics on invalid options.
func MustNew[T any](opts *Options[T]) *Pool[T] {
	p, err := New(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the pool identity embedded in every handle it issues.
func (p *Pool[T]) ID() poolid.ID { return p.id }

// Blocks returns the number of blocks allocated so far.
func (p *Pool[T]) Blocks() int { return len(p.blocks) }

// BlockCapacity returns the number of slots per block.
func (p *Pool[T]) BlockCapacity() int { return int(p.capacity) }

// Len returns the number of live values.
func (p *Pool[T]) Len() int { return p.live }

// Closed reports whether Close has been called.
func (p *Pool[T]) Closed() bool { return p.closed }

// Alloc stores value in a vacant slot, growing the pool by one block if there
// is none, and returns its handle.
func (p *Pool[T]) Alloc(value T) Handle[T] {
	if p.closed {
		panic(fmt.Errorf("%w: alloc on %s", ErrClosed, p.id))
	}
	if p.head == noSlot {
		p.grow()
	}

	idx := p.head
	e := p.slotAt(idx)
	if e.state != vacant {
		panic(fmt.Errorf("%w: head slot %d of %s is occupied", ErrCorruptFreeList, idx, p.id))
	}
	p.head = e.next

	e.value = value
	e.state = occupied
	e.next = noSlot
	p.live++
	p.stats.allocs++

	return Handle[T]{slot: idx, gen: e.gen, pool: p.id}
}

// Free releases the value h names and pushes its slot onto the free list. It
// returns false if h names no live value: already freed, stale, dangling, or
// the pool was closed.
//
// Free panics if h was issued by another pool, or if a checked view of the
// slot is outstanding.
func (p *Pool[T]) Free(h Handle[T]) bool {
	e := p.lookup(h)
	if e == nil {
		return false
	}
	if e.borrow != 0 {
		panic(fmt.Errorf("%w: free of %s with an outstanding view", ErrBorrowed, h))
	}

	v := e.value
	var zero T
	e.value = zero
	e.state = vacant
	e.next = p.head
	if p.gens {
		e.gen++
	}
	p.head = h.slot
	p.live--
	p.stats.frees++

	if p.release != nil {
		p.release(&v)
	}
	return true
}

// Close drops every remaining value, running the release hook on each, and
// releases all blocks. Handles issued earlier stay comparable but no longer
// name anything: access reports not found and Free returns false. Alloc on a
// closed pool panics, including from inside the release hook while Close runs.
// Closing twice is a no-op.
func (p *Pool[T]) Close() {
	if p.closed {
		return
	}
	for _, block := range p.blocks {
		for i := range block {
			if block[i].borrow != 0 {
				panic(fmt.Errorf("%w: close of %s with an outstanding view", ErrBorrowed, p.id))
			}
		}
	}

	blocks, dropped := p.blocks, p.live
	p.blocks = nil
	p.head = noSlot
	p.live = 0
	p.closed = true

	if p.release != nil {
		for _, block := range blocks {
			for i := range block {
				if block[i].state == occupied {
					p.release(&block[i].value)
				}
			}
		}
	}
	p.log.Debug("slab: pool closed", "pool", p.id, "dropped", dropped)
}

// grow appends one block and makes its first slot the free-list head.
func (p *Pool[T]) grow() {
	base := uint64(len(p.blocks)) * uint64(p.capacity)
	if base+uint64(p.capacity) > uint64(noSlot) {
		panic(fmt.Errorf("%w: %s has %d blocks of %d", ErrExhausted, p.id, len(p.blocks), p.capacity))
	}

	head, block := newBlock[T](uint32(base), p.capacity, p.head)
	p.blocks = append(p.blocks, block)
	p.head = head
	p.stats.grows++

	p.log.Debug("slab: grew pool",
		"pool", p.id,
		"blocks", len(p.blocks),
		"block_capacity", p.capacity,
		"live", p.live,
	)
}

// slotAt returns the entry at a global slot index known to be in range.
func (p *Pool[T]) slotAt(idx uint32) *entry[T] {
	return &p.blocks[idx/p.capacity][idx%p.capacity]
}

// lookup validates h against this pool and returns its entry if it holds a
// live value. Dangling handles never match. A handle issued by another pool
// is a programming error and panics.
func (p *Pool[T]) lookup(h Handle[T]) *entry[T] {
	if h.pool == poolid.Dangling {
		return nil
	}
	if h.pool != p.id {
		panic(fmt.Errorf("%w: %s used with %s", ErrForeignHandle, h, p.id))
	}

	b := h.slot / p.capacity
	if int(b) >= len(p.blocks) {
		return nil
	}
	e := &p.blocks[b][h.slot%p.capacity]
	if e.state != occupied || e.gen != h.gen {
		return nil
	}
	return e
}
