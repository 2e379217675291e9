package voice

// SampleBuffer is an immutable, shared sample buffer. It is padded with
// one guard sample before index 0 and two after the last so that the
// Sampler voice's 4-point Hermite interpolator never reads out of bounds
// (§4.1, §9). Shared ownership is just Go's garbage collector: a
// *SampleBuffer stays alive as long as any Voice (or the loader's table)
// holds a reference, and is collected once the last one drops it — no
// hand-rolled refcounting is needed.
type SampleBuffer struct {
	// padded holds [guardBefore, data..., guardAfter, guardAfter] so that
	// index i+1 in padded corresponds to sample i of the logical buffer,
	// for i in [-1, len(data)+1].
	padded     []float32
	length     int
	sampleRate float64
}

// NewSampleBuffer copies samples into a guard-padded buffer. Guard
// samples are zero (silence at the edges), matching the loader's padding
// responsibility described in §4.1.
func NewSampleBuffer(samples []float32, sampleRate float64) *SampleBuffer {
	b := &SampleBuffer{
		length:     len(samples),
		sampleRate: sampleRate,
	}
	b.padded = make([]float32, len(samples)+3)
	copy(b.padded[1:], samples)
	return b
}

// Len returns the number of logical (non-guard) samples.
func (b *SampleBuffer) Len() int { return b.length }

// SampleRate returns the buffer's native sample rate, used to compute
// PlaybackRate scaling against the engine's render sample rate.
func (b *SampleBuffer) SampleRate() float64 { return b.sampleRate }

// At returns the logical sample at index i, where i ranges over
// [-1, Len()+1] inclusive to cover the guard samples required by Hermite
// interpolation. Out-of-range indices return 0.
func (b *SampleBuffer) At(i int) float32 {
	idx := i + 1
	if idx < 0 || idx >= len(b.padded) {
		return 0
	}
	return b.padded[idx]
}
