package slab

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/slab/poolid"
)

const (
	// DefaultBlockCapacity is the number of slots per block when Options leave it unset.
	DefaultBlockCapacity = 256

	// MaxBlockCapacity bounds a single block.
	MaxBlockCapacity = 1 << 24
)

// Options configures a Pool. A nil *Options selects every default.
type Options[T any] struct {
	// BlockCapacity is the number of slots added each time the pool grows.
	// Zero selects DefaultBlockCapacity.
	BlockCapacity int

	// IDs issues the pool identity. Nil uses poolid.Default().
	IDs *poolid.Generator

	// Generations enables stale-handle detection: every free bumps the
	// slot's generation, and handles issued before the free stop matching.
	// Off by default, in which case a reused slot yields a handle equal to
	// the one it replaced.
	Generations bool

	// Release, if set, is called with each value leaving the pool, on Free
	// and on Close. On Free the slot has already been recycled when it runs,
	// so the hook may allocate from the same pool. On Close the pool is
	// already closed: Alloc from the hook panics with ErrClosed and every
	// handle reports not found.
	Release func(*T)

	// Logger receives growth and lifecycle events. Nil uses the package
	// logger in internal/logger, which discards by default.
	Logger *slog.Logger
}

func (o *Options[T]) blockCapacity() (uint32, error) {
	if o == nil || o.BlockCapacity == 0 {
		return DefaultBlockCapacity, nil
	}
	if o.BlockCapacity < 1 || o.BlockCapacity > MaxBlockCapacity {
		return 0, fmt.Errorf("%w: %d (want 1..%d)", ErrBadCapacity, o.BlockCapacity, MaxBlockCapacity)
	}
	return uint32(o.BlockCapacity), nil
}

func (o *Options[T]) generator() *poolid.Generator {
	if o == nil || o.IDs == nil {
		return poolid.Default()
	}
	return o.IDs
}

func (o *Options[T]) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return logger.L
	}
	return o.Logger
}
