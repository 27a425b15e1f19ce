package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/slab"
)

type demoOptions struct {
	capacity  int
	count     int
	freeIndex int
	samples   []int
}

type demoSample struct {
	Index int `json:"index"`
	Value int `json:"value"`
}

type demoReport struct {
	BlockCapacity    int          `json:"block_capacity"`
	Allocated        int          `json:"allocated"`
	BlocksAfterFill  int          `json:"blocks_after_fill"`
	Samples          []demoSample `json:"samples"`
	FreedIndex       int          `json:"freed_index"`
	FreeResult       bool         `json:"free_result"`
	SecondFreeResult bool         `json:"second_free_result"`
	Reused           bool         `json:"reused"`
	ReusedHandle     string       `json:"reused_handle"`
	BlocksAfterReuse int          `json:"blocks_after_reuse"`
	BlocksAfterExtra int          `json:"blocks_after_extra"`
	Stats            slab.Stats   `json:"stats"`
}

func newDemoCmd(g *globals) *cobra.Command {
	o := &demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the block growth and slot reuse scenario",
		Long: `The demo command fills a pool, samples a few values, frees one
handle and shows that the next allocation reuses its slot without growing,
while the allocation after that appends a new block.

Example:
  slabctl demo
  slabctl demo --capacity 64 --count 256 --free 7
  slabctl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runDemo(o)
			if err != nil {
				return err
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			printDemo(g, cmd, report)
			return nil
		},
	}
	cmd.Flags().IntVar(&o.capacity, "capacity", slab.DefaultBlockCapacity, "Slots per block")
	cmd.Flags().IntVar(&o.count, "count", 1024, "Values to allocate before freeing")
	cmd.Flags().IntVar(&o.freeIndex, "free", 30, "Index of the value to free")
	cmd.Flags().IntSliceVar(&o.samples, "sample", []int{10, 20, 300}, "Indexes to read back")
	return cmd
}

func runDemo(o *demoOptions) (*demoReport, error) {
	if o.count < 1 {
		return nil, fmt.Errorf("--count must be positive, got %d", o.count)
	}
	if o.freeIndex < 0 || o.freeIndex >= o.count {
		return nil, fmt.Errorf("--free %d out of range [0, %d)", o.freeIndex, o.count)
	}

	p, err := slab.New(&slab.Options[int]{BlockCapacity: o.capacity})
	if err != nil {
		return nil, err
	}
	defer p.Close()

	handles := make([]slab.Handle[int], o.count)
	for i := range handles {
		handles[i] = p.Alloc(i)
	}

	r := &demoReport{
		BlockCapacity:   p.BlockCapacity(),
		Allocated:       o.count,
		BlocksAfterFill: p.Blocks(),
		FreedIndex:      o.freeIndex,
	}

	for _, i := range o.samples {
		if i < 0 || i >= o.count {
			return nil, fmt.Errorf("--sample %d out of range [0, %d)", i, o.count)
		}
		v, ok := p.Value(handles[i])
		if !ok {
			return nil, fmt.Errorf("value %d missing from pool", i)
		}
		r.Samples = append(r.Samples, demoSample{Index: i, Value: v})
	}

	freed := handles[o.freeIndex]
	r.FreeResult = p.Free(freed)
	r.SecondFreeResult = p.Free(freed)

	h := p.Alloc(o.count)
	r.Reused = h == freed
	r.ReusedHandle = h.String()
	r.BlocksAfterReuse = p.Blocks()

	p.Alloc(o.count + 1)
	r.BlocksAfterExtra = p.Blocks()
	r.Stats = p.Stats()
	return r, nil
}

func printDemo(g *globals, cmd *cobra.Command, r *demoReport) {
	out := cmd.OutOrStdout()
	g.printf(out, "allocated %d values with block capacity %d: %d blocks\n",
		r.Allocated, r.BlockCapacity, r.BlocksAfterFill)
	for _, s := range r.Samples {
		g.printf(out, "  get(%d) = %d\n", s.Index, s.Value)
	}
	g.printf(out, "free(%d) = %t, again = %t\n", r.FreedIndex, r.FreeResult, r.SecondFreeResult)
	g.printf(out, "next alloc reused freed handle: %t (%s), blocks = %d\n",
		r.Reused, r.ReusedHandle, r.BlocksAfterReuse)
	g.printf(out, "one more alloc: blocks = %d\n", r.BlocksAfterExtra)
}
