package effects

import (
	"math"
	"sync/atomic"
)

// atomicFloat stores a float64 as a bit-cast atomic.Uint64 for lock-free
// cross-thread reads/writes, the same pattern the teacher's EQ5Band uses
// for its per-band gains.
type atomicFloat struct {
	bits atomic.Uint64
}

func (a *atomicFloat) store(v float64) { a.bits.Store(math.Float64bits(v)) }
func (a *atomicFloat) load() float64   { return math.Float64frombits(a.bits.Load()) }
