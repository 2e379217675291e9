package dsp

import "math"

// FloatKey is a total-order, hashable representation of a finite float64,
// used to give EventRef parameter maps a stable content hash even though
// IEEE-754 floats aren't directly comparable-for-equality in a sane way
// (NaN, signed zero). Bit-casting preserves ordering for all finite values
// this engine ever produces (parameter values, never NaN/Inf).
type FloatKey uint64

// NewFloatKey bit-casts a float64 into its order-preserving uint64 key:
// non-negative floats sort by their raw bit pattern; negative floats are
// complemented so they sort below, preserving total order.
func NewFloatKey(v float64) FloatKey {
	bits := math.Float64bits(v)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	return FloatKey(bits)
}
