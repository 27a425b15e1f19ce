package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/slab"
	"github.com/joshuapare/slabkit/slab/metrics"
)

type benchOptions struct {
	capacity    int
	live        int
	ops         int
	seed        int64
	generations bool
	metrics     bool
}

type benchReport struct {
	Ops      int           `json:"ops"`
	Live     int           `json:"live"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	NsPerOp  float64       `json:"ns_per_op"`
	OpsPerS  float64       `json:"ops_per_sec"`
	Checksum int64         `json:"checksum"`
	Stats    slab.Stats    `json:"stats"`
}

func newBenchCmd(g *globals) *cobra.Command {
	o := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run an alloc/free churn against a pool",
		Long: `The bench command keeps a working set of live values and replaces a
random one on every operation (free followed by alloc), then reports
throughput and pool statistics.

Example:
  slabctl bench
  slabctl bench --live 100000 --ops 5000000 --capacity 1024
  slabctl bench --generations --json
  slabctl bench --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runBench(o)
			if err != nil {
				return err
			}
			if o.metrics {
				return writeMetrics(cmd.OutOrStdout(), report.Stats)
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			g.printf(out, "%d ops over %d live values in %v\n", report.Ops, report.Live, report.Elapsed)
			g.printf(out, "  %.1f ns/op, %.0f ops/s\n", report.NsPerOp, report.OpsPerS)
			g.printf(out, "  blocks: %d x %d slots, live: %d, vacant: %d\n",
				report.Stats.Blocks, report.Stats.BlockCapacity, report.Stats.Live, report.Stats.Vacant)
			g.printf(out, "  allocs: %d, frees: %d, grows: %d\n",
				report.Stats.Allocs, report.Stats.Frees, report.Stats.Grows)
			return nil
		},
	}
	cmd.Flags().IntVar(&o.capacity, "capacity", slab.DefaultBlockCapacity, "Slots per block")
	cmd.Flags().IntVar(&o.live, "live", 10000, "Size of the live working set")
	cmd.Flags().IntVar(&o.ops, "ops", 1000000, "Number of free+alloc operations")
	cmd.Flags().Int64Var(&o.seed, "seed", 42, "Random seed")
	cmd.Flags().BoolVar(&o.generations, "generations", false, "Enable stale-handle detection")
	cmd.Flags().BoolVar(&o.metrics, "metrics", false, "Print final pool statistics in Prometheus text format")
	return cmd
}

func runBench(o *benchOptions) (*benchReport, error) {
	if o.live < 1 {
		return nil, fmt.Errorf("--live must be positive, got %d", o.live)
	}
	if o.ops < 0 {
		return nil, fmt.Errorf("--ops must not be negative, got %d", o.ops)
	}

	p, err := slab.New(&slab.Options[int64]{
		BlockCapacity: o.capacity,
		Generations:   o.generations,
	})
	if err != nil {
		return nil, err
	}
	defer p.Close()

	handles := make([]slab.Handle[int64], o.live)
	for i := range handles {
		handles[i] = p.Alloc(int64(i))
	}
	logger.Debug("bench: working set ready", "live", o.live, "blocks", p.Blocks())

	rng := rand.New(rand.NewSource(o.seed))
	var checksum int64

	start := time.Now()
	for i := range o.ops {
		j := rng.Intn(len(handles))
		v, ok := p.Value(handles[j])
		if !ok {
			return nil, fmt.Errorf("op %d: live handle %s lost its value", i, handles[j])
		}
		checksum += v
		p.Free(handles[j])
		handles[j] = p.Alloc(int64(i))
	}
	elapsed := time.Since(start)

	r := &benchReport{
		Ops:      o.ops,
		Live:     o.live,
		Elapsed:  elapsed,
		Checksum: checksum,
		Stats:    p.Stats(),
	}
	if o.ops > 0 && elapsed > 0 {
		r.NsPerOp = float64(elapsed.Nanoseconds()) / float64(o.ops)
		r.OpsPerS = float64(o.ops) / elapsed.Seconds()
	}
	logger.Info("bench: done", "ops", o.ops, "elapsed", elapsed)
	return r, nil
}

// writeMetrics renders a stats snapshot through the pool collector.
func writeMetrics(w io.Writer, st slab.Stats) error {
	c := metrics.NewCollector()
	c.Register("bench", func() slab.Stats { return st })

	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(c); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
