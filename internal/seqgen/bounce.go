package seqgen

import "math"

// Bounce produces a sinusoidal bounce between min and max over steps
// ticks: min + (max-min)*|sin(i*(360deg/steps))|, i incrementing without
// bound (§4.5). Grounded on the teacher's LFO sine-waveform sampling.
type Bounce struct {
	min, max float64
	steps    int
	i        int
}

// NewBounce creates a Bounce generator. steps must be >= 1.
func NewBounce(min, max float64, steps int) *Bounce {
	if steps < 1 {
		steps = 1
	}
	return &Bounce{min: min, max: max, steps: steps}
}

// Next returns the next bounced value and advances i.
func (b *Bounce) Next() float64 {
	angle := float64(b.i) * (2 * math.Pi / float64(b.steps))
	v := b.min + (b.max-b.min)*math.Abs(math.Sin(angle))
	b.i++
	return v
}

// State returns the current (unbounded) tick count i.
func (b *Bounce) State() int { return b.i }
