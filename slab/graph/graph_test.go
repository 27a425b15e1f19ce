package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/joshuapare/slabkit/slab"
	"github.com/joshuapare/slabkit/slab/poolid"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newChain builds a -> b -> c -> d and returns the graph and its vertices.
func newChain(t *testing.T) (*Graph[string], []Vertex[string]) {
	t.Helper()
	g, err := New[string](&Options{BlockCapacity: 4})
	require.NoError(t, err)

	var vs []Vertex[string]
	for _, name := range []string{"a", "b", "c", "d"} {
		vs = append(vs, g.AddVertex(name))
	}
	for i := range len(vs) - 1 {
		require.NoError(t, g.AddEdge(vs[i], vs[i+1]))
	}
	return g, vs
}

func values(t *testing.T, g *Graph[string], vs []Vertex[string]) []string {
	t.Helper()
	out := make([]string, len(vs))
	for i, x := range vs {
		v, ok := g.Value(x)
		require.True(t, ok)
		out[i] = v
	}
	return out
}

func TestGraph_AddEdges(t *testing.T) {
	g, vs := newChain(t)
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 3, g.Edges())

	assert.True(t, g.HasEdge(vs[0], vs[1]))
	assert.False(t, g.HasEdge(vs[1], vs[0]))

	// Duplicate edge is a no-op.
	require.NoError(t, g.AddEdge(vs[0], vs[1]))
	assert.Equal(t, 3, g.Edges())

	ns, ok := g.Neighbors(vs[1])
	require.True(t, ok)
	assert.Equal(t, []Vertex[string]{vs[2]}, ns)
}

func TestGraph_SelfLoop(t *testing.T) {
	g, err := New[int](nil)
	require.NoError(t, err)
	x := g.AddVertex(1)

	require.NoError(t, g.AddEdge(x, x))
	require.NoError(t, g.AddEdge(x, x))
	assert.Equal(t, 1, g.Edges())
	assert.True(t, g.HasEdge(x, x))

	_, ok := g.RemoveVertex(x)
	require.True(t, ok)
	assert.Zero(t, g.Edges())
}

func TestGraph_AddEdgeMissingVertex(t *testing.T) {
	g, vs := newChain(t)
	gone := vs[3]
	_, ok := g.RemoveVertex(gone)
	require.True(t, ok)

	err := g.AddEdge(vs[0], gone)
	require.ErrorIs(t, err, ErrNoVertex)

	err = g.AddEdge(gone, vs[0])
	require.ErrorIs(t, err, ErrNoVertex)

	err = g.AddEdge(gone, gone)
	require.ErrorIs(t, err, ErrNoVertex)

	err = g.AddEdge(Vertex[string]{}, vs[0])
	require.ErrorIs(t, err, ErrNoVertex)
}

func TestGraph_RemoveVertexDropsIncidentEdges(t *testing.T) {
	g, vs := newChain(t)
	require.NoError(t, g.AddEdge(vs[3], vs[1]))
	require.Equal(t, 4, g.Edges())

	v, ok := g.RemoveVertex(vs[1])
	require.True(t, ok)
	assert.Equal(t, "b", v)

	// a->b, b->c, d->b are gone; c->d remains.
	assert.Equal(t, 1, g.Edges())
	assert.True(t, g.HasEdge(vs[2], vs[3]))

	ns, _ := g.Neighbors(vs[0])
	assert.Empty(t, ns)
	ns, _ = g.Neighbors(vs[3])
	assert.Empty(t, ns)

	_, ok = g.RemoveVertex(vs[1])
	assert.False(t, ok)
}

func TestGraph_RemoveEdge(t *testing.T) {
	g, vs := newChain(t)
	assert.True(t, g.RemoveEdge(vs[0], vs[1]))
	assert.False(t, g.RemoveEdge(vs[0], vs[1]))
	assert.Equal(t, 2, g.Edges())

	ok, err := g.Reachable(vs[0], vs[3])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGraph_BFSOrderAndDepth(t *testing.T) {
	g, err := New[string](nil)
	require.NoError(t, err)

	root := g.AddVertex("root")
	l := g.AddVertex("l")
	r := g.AddVertex("r")
	ll := g.AddVertex("ll")
	rr := g.AddVertex("rr")
	for _, e := range [][2]Vertex[string]{{root, l}, {root, r}, {l, ll}, {r, rr}, {rr, root}} {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}

	var order []string
	depths := map[string]int{}
	require.NoError(t, g.BFS(root, func(x Vertex[string], depth int) bool {
		v, _ := g.Value(x)
		order = append(order, v)
		depths[v] = depth
		return true
	}))

	assert.Equal(t, []string{"root", "l", "r", "ll", "rr"}, order)
	assert.Equal(t, map[string]int{"root": 0, "l": 1, "r": 1, "ll": 2, "rr": 2}, depths)
}

func TestGraph_BFSStopsEarly(t *testing.T) {
	g, vs := newChain(t)
	var seen []Vertex[string]
	require.NoError(t, g.BFS(vs[0], func(x Vertex[string], _ int) bool {
		seen = append(seen, x)
		return len(seen) < 2
	}))
	assert.Equal(t, vs[:2], seen)

	// Pooled scratch state must come back clean for the next walk.
	seen = nil
	require.NoError(t, g.BFS(vs[0], func(x Vertex[string], _ int) bool {
		seen = append(seen, x)
		return true
	}))
	assert.Equal(t, vs, seen)
}

func TestGraph_BFSMissingStart(t *testing.T) {
	g, _ := newChain(t)
	err := g.BFS(Vertex[string]{}, func(Vertex[string], int) bool { return true })
	require.ErrorIs(t, err, ErrNoVertex)
}

func TestGraph_ShortestPath(t *testing.T) {
	g, vs := newChain(t)
	require.NoError(t, g.AddEdge(vs[0], vs[2]))

	path, err := g.ShortestPath(vs[0], vs[3])
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, values(t, g, path))

	path, err = g.ShortestPath(vs[1], vs[1])
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, values(t, g, path))

	_, err = g.ShortestPath(vs[3], vs[0])
	require.ErrorIs(t, err, ErrNoPath)

	_, err = g.ShortestPath(vs[0], Vertex[string]{})
	require.ErrorIs(t, err, ErrNoVertex)
}

func TestGraph_Reachable(t *testing.T) {
	g, vs := newChain(t)
	for _, tc := range []struct {
		from, to int
		want     bool
	}{
		{0, 3, true},
		{1, 1, true},
		{3, 0, false},
		{2, 1, false},
	} {
		got, err := g.Reachable(vs[tc.from], vs[tc.to])
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%d -> %d", tc.from, tc.to)
	}
}

func TestGraph_VerticesAsMapKeys(t *testing.T) {
	g, vs := newChain(t)
	labels := map[Vertex[string]]string{}
	for _, x := range vs {
		labels[x] = "v"
	}
	labels[vs[0]] = "first"
	assert.Len(t, labels, 4)

	require.True(t, g.Set(vs[0], "A"))
	v, _ := g.Value(vs[0])
	assert.Equal(t, "A", v)
}

func TestGraph_ForeignVertexPanics(t *testing.T) {
	gen := poolid.NewGenerator()
	a, err := New[int](&Options{IDs: gen})
	require.NoError(t, err)
	b, err := New[int](&Options{IDs: gen})
	require.NoError(t, err)

	xa := a.AddVertex(1)
	xb := b.AddVertex(1)

	defer func() {
		err, _ := recover().(error)
		require.ErrorIs(t, err, slab.ErrForeignHandle)
	}()
	_ = b.AddEdge(xb, xa)
}

func TestGraph_VertexSlotsRecycled(t *testing.T) {
	g, err := New[int](&Options{BlockCapacity: 8})
	require.NoError(t, err)

	for round := range 20 {
		var vs []Vertex[int]
		for i := range 8 {
			vs = append(vs, g.AddVertex(round*8+i))
		}
		for i := 1; i < len(vs); i++ {
			require.NoError(t, g.AddEdge(vs[i-1], vs[i]))
		}
		for _, x := range vs {
			g.RemoveVertex(x)
		}
		require.Zero(t, g.Edges())
	}
	assert.Equal(t, 1, g.Stats().Blocks)
}

func TestGraph_Close(t *testing.T) {
	g, vs := newChain(t)
	g.Close()
	assert.Zero(t, g.Len())
	assert.Zero(t, g.Edges())
	assert.False(t, g.Contains(vs[0]))
}
