package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/joshuapare/slabkit/slab"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCollector(t *testing.T) {
	p := slab.MustNew(&slab.Options[int]{BlockCapacity: 4})
	hs := make([]slab.Handle[int], 6)
	for i := range hs {
		hs[i] = p.Alloc(i)
	}
	p.Free(hs[0])

	c := NewCollector()
	c.Register("nodes", p.Stats)

	expected := `
# HELP slab_pool_allocs_total Total number of allocations.
# TYPE slab_pool_allocs_total counter
slab_pool_allocs_total{pool="nodes"} 6
# HELP slab_pool_block_capacity Number of slots per block.
# TYPE slab_pool_block_capacity gauge
slab_pool_block_capacity{pool="nodes"} 4
# HELP slab_pool_blocks Number of blocks allocated by the pool.
# TYPE slab_pool_blocks gauge
slab_pool_blocks{pool="nodes"} 2
# HELP slab_pool_frees_total Total number of successful frees.
# TYPE slab_pool_frees_total counter
slab_pool_frees_total{pool="nodes"} 1
# HELP slab_pool_grows_total Total number of blocks appended.
# TYPE slab_pool_grows_total counter
slab_pool_grows_total{pool="nodes"} 2
# HELP slab_pool_live_objects Number of occupied slots.
# TYPE slab_pool_live_objects gauge
slab_pool_live_objects{pool="nodes"} 5
# HELP slab_pool_vacant_slots Number of slots on the free list.
# TYPE slab_pool_vacant_slots gauge
slab_pool_vacant_slots{pool="nodes"} 3
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))
}

func TestCollector_MultiplePoolsAndUnregister(t *testing.T) {
	a := slab.MustNew[string](nil)
	b := slab.MustNew[string](nil)
	a.Alloc("x")
	b.Alloc("y")
	b.Alloc("z")

	c := NewCollector()
	c.Register("a", a.Stats)
	c.Register("b", b.Stats)

	expected := `
# HELP slab_pool_live_objects Number of occupied slots.
# TYPE slab_pool_live_objects gauge
slab_pool_live_objects{pool="a"} 1
slab_pool_live_objects{pool="b"} 2
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "slab_pool_live_objects"))

	c.Unregister("a")
	expected = `
# HELP slab_pool_live_objects Number of occupied slots.
# TYPE slab_pool_live_objects gauge
slab_pool_live_objects{pool="b"} 2
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "slab_pool_live_objects"))
}

func TestCollector_Registers(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	c := NewCollector()
	c.Register("p", slab.MustNew[int](nil).Stats)
	require.NoError(t, reg.Register(c))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 7, n)
}
