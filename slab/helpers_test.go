package slab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/joshuapare/slabkit/slab/poolid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ============================================================================
// Test Helpers
// ============================================================================

// newTestPool creates a pool with the given block capacity drawing IDs from gen.
func newTestPool[T any](t testing.TB, gen *poolid.Generator, capacity int) *Pool[T] {
	t.Helper()
	p, err := New(&Options[T]{BlockCapacity: capacity, IDs: gen})
	require.NoError(t, err)
	return p
}

// requirePanicIs runs fn and requires it to panic with an error matching target.
func requirePanicIs(t testing.TB, target error, fn func()) {
	t.Helper()

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()

	require.NotNil(t, recovered, "expected panic wrapping %v", target)
	err, ok := recovered.(error)
	require.True(t, ok, "panic value %v is not an error", recovered)
	require.True(t, errors.Is(err, target), "expected %v, got: %v", target, err)
}

// allocRange allocates the values 0..n-1 and returns their handles in order.
func allocRange(p *Pool[int], n int) []Handle[int] {
	hs := make([]Handle[int], n)
	for i := range n {
		hs[i] = p.Alloc(i)
	}
	return hs
}

// freeListLen walks the free list and returns its length.
func freeListLen[T any](p *Pool[T]) int {
	n := 0
	for idx := p.head; idx != noSlot; idx = p.slotAt(idx).next {
		n++
	}
	return n
}
