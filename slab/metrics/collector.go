// Package metrics exports slab pool statistics to Prometheus.
//
// Pools are not safe for concurrent use while the collector runs on the
// scrape goroutine, so pools are registered through a StatsFunc. Pass the
// pool's Stats method directly when the pool is only touched while scrapes
// cannot happen; otherwise wrap it in whatever lock guards the pool.
package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/joshuapare/slabkit/slab"
)

// StatsFunc returns a snapshot of one pool's statistics.
type StatsFunc func() slab.Stats

var _ prometheus.Collector = &Collector{}

var (
	blocksDesc = prometheus.NewDesc(
		"slab_pool_blocks",
		"Number of blocks allocated by the pool.",
		[]string{"pool"}, nil,
	)
	blockCapacityDesc = prometheus.NewDesc(
		"slab_pool_block_capacity",
		"Number of slots per block.",
		[]string{"pool"}, nil,
	)
	liveDesc = prometheus.NewDesc(
		"slab_pool_live_objects",
		"Number of occupied slots.",
		[]string{"pool"}, nil,
	)
	vacantDesc = prometheus.NewDesc(
		"slab_pool_vacant_slots",
		"Number of slots on the free list.",
		[]string{"pool"}, nil,
	)
	allocsDesc = prometheus.NewDesc(
		"slab_pool_allocs_total",
		"Total number of allocations.",
		[]string{"pool"}, nil,
	)
	freesDesc = prometheus.NewDesc(
		"slab_pool_frees_total",
		"Total number of successful frees.",
		[]string{"pool"}, nil,
	)
	growsDesc = prometheus.NewDesc(
		"slab_pool_grows_total",
		"Total number of blocks appended.",
		[]string{"pool"}, nil,
	)
)

// Collector reports the statistics of every registered pool, labelled by the
// name it was registered under.
type Collector struct {
	mtx   sync.RWMutex
	pools map[string]StatsFunc
}

// NewCollector returns a collector with no pools registered.
func NewCollector() *Collector {
	return &Collector{pools: make(map[string]StatsFunc)}
}

// Register adds a pool under name, replacing any pool registered under it.
func (c *Collector) Register(name string, stats StatsFunc) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.pools[name] = stats
}

// Unregister removes the pool registered under name.
func (c *Collector) Unregister(name string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	delete(c.pools, name)
}

func (c *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- blocksDesc
	descs <- blockCapacityDesc
	descs <- liveDesc
	descs <- vacantDesc
	descs <- allocsDesc
	descs <- freesDesc
	descs <- growsDesc
}

func (c *Collector) Collect(metrics chan<- prometheus.Metric) {
	c.mtx.RLock()
	names := make([]string, 0, len(c.pools))
	for name := range c.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	funcs := make([]StatsFunc, len(names))
	for i, name := range names {
		funcs[i] = c.pools[name]
	}
	c.mtx.RUnlock()

	for i, name := range names {
		s := funcs[i]()
		metrics <- prometheus.MustNewConstMetric(blocksDesc, prometheus.GaugeValue, float64(s.Blocks), name)
		metrics <- prometheus.MustNewConstMetric(blockCapacityDesc, prometheus.GaugeValue, float64(s.BlockCapacity), name)
		metrics <- prometheus.MustNewConstMetric(liveDesc, prometheus.GaugeValue, float64(s.Live), name)
		metrics <- prometheus.MustNewConstMetric(vacantDesc, prometheus.GaugeValue, float64(s.Vacant), name)
		metrics <- prometheus.MustNewConstMetric(allocsDesc, prometheus.CounterValue, float64(s.Allocs), name)
		metrics <- prometheus.MustNewConstMetric(freesDesc, prometheus.CounterValue, float64(s.Frees), name)
		metrics <- prometheus.MustNewConstMetric(growsDesc, prometheus.CounterValue, float64(s.Grows), name)
	}
}
