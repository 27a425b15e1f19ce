// Package poolid issues process-unique pool identities.
//
// Every slab.Pool carries an ID, and every handle the pool issues embeds it.
// Comparing the two is the admission check for all handle operations, so two
// pools that are alive at the same time must never share an ID, even when
// they draw from different Generators.
//
// An ID has two halves. The high 32 bits are the namespace of the Generator
// that issued it, taken from a process-wide counter when the Generator is
// created; the low 32 bits are that Generator's own sequence number. Neither
// counter is ever rewound, so IDs are unique across every Generator in the
// process.
//
// The zero ID, Dangling, is reserved: no Generator ever returns it. Sentinel
// handles carry it so that they match no pool.
package poolid

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// ID identifies one pool instance.
type ID uint64

// Dangling is the reserved ID that is never issued.
const Dangling ID = 0

// IsDangling reports whether id is the reserved sentinel.
func (id ID) IsDangling() bool { return id == Dangling }

func (id ID) String() string {
	if id == Dangling {
		return "pool#dangling"
	}
	return "pool#" + strconv.FormatUint(uint64(id), 10)
}

const seqBits = 32

// namespaces hands each Generator its high half. Namespace 0 is never issued,
// which keeps Dangling out of every Generator's range.
var namespaces atomic.Uint64

// Generator hands out IDs. It is safe for concurrent use; the counter sits on
// its own cache line since pools may be created from many goroutines.
type Generator struct {
	ns   uint64
	_    cpu.CacheLinePad
	last atomic.Uint64
	_    cpu.CacheLinePad
}

// NewGenerator returns a Generator with a fresh namespace. Its IDs never
// collide with those of any other Generator in the process.
func NewGenerator() *Generator {
	ns := namespaces.Add(1)
	if ns > math.MaxUint32 {
		panic("poolid: generator namespaces exhausted")
	}
	return &Generator{ns: ns}
}

// Generate returns an ID distinct from every ID any generator returned before.
func (g *Generator) Generate() ID {
	seq := g.last.Add(1)
	if seq > math.MaxUint32 {
		panic("poolid: generator " + strconv.FormatUint(g.ns, 10) + " exhausted")
	}
	return ID(g.ns<<seqBits | seq)
}

// Namespace returns the high half shared by every ID g issues.
func (g *Generator) Namespace() uint64 { return g.ns }

// Issued returns how many IDs have been generated so far.
func (g *Generator) Issued() uint64 {
	return g.last.Load()
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

// Default returns the process-wide Generator. It is created on first use and
// lives until the process exits; pools constructed without an explicit
// generator draw their IDs from it, so IDs are unique across all of them.
func Default() *Generator {
	defaultOnce.Do(func() {
		defaultGen = NewGenerator()
	})
	return defaultGen
}
