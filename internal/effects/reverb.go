package effects

import "github.com/drunkcoder/ruffbox-go/internal/dsp"

// stereoSpread is the fixed sample-count offset between the left and
// right channel's comb/allpass line lengths, carried over from the
// original engine's freeverb-derived stereo spread constant.
const stereoSpread = 23

// Canonical comb and allpass tuning lengths in samples at 44100Hz,
// following the classic Schroeder/Moorer (freeverb) layout: 8 parallel
// comb filters feeding 4 series allpass filters, per channel.
var combTuningL = [8]int{1116, 1188, 1277, 1356, 1422, 1496, 1617, 1557}
var allpassTuningL = [4]int{556, 441, 341, 225}

type combFilter struct {
	buf         []float64
	pos         int
	feedback    float64
	filterStore float64
	damp1       float64
	damp2       float64
}

func newCombFilter(length int) *combFilter {
	if length < 1 {
		length = 1
	}
	return &combFilter{buf: make([]float64, length)}
}

func (c *combFilter) setDamping(damp float64) {
	c.damp1 = damp
	c.damp2 = 1 - damp
}

func (c *combFilter) process(in float64) float64 {
	out := c.buf[c.pos]
	c.filterStore = out*c.damp2 + c.filterStore*c.damp1
	c.buf[c.pos] = in + c.filterStore*c.feedback
	c.pos++
	if c.pos >= len(c.buf) {
		c.pos = 0
	}
	return out
}

func (c *combFilter) reset() {
	for i := range c.buf {
		c.buf[i] = 0
	}
	c.filterStore = 0
	c.pos = 0
}

type allpassFilter struct {
	buf      []float64
	pos      int
	feedback float64
}

func newAllpassFilter(length int) *allpassFilter {
	if length < 1 {
		length = 1
	}
	return &allpassFilter{buf: make([]float64, length), feedback: 0.5}
}

func (a *allpassFilter) process(in float64) float64 {
	bufOut := a.buf[a.pos]
	out := -in + bufOut
	a.buf[a.pos] = in + bufOut*a.feedback
	a.pos++
	if a.pos >= len(a.buf) {
		a.pos = 0
	}
	return out
}

func (a *allpassFilter) reset() {
	for i := range a.buf {
		a.buf[i] = 0
	}
	a.pos = 0
}

// channel bundles the 8 comb + 4 allpass chain for one stereo side.
type channel struct {
	combs     [8]*combFilter
	allpasses [4]*allpassFilter
}

func newChannel(sampleRate float64, spread int) *channel {
	ratio := sampleRate / 44100.0
	ch := &channel{}
	for i, base := range combTuningL {
		length := int(float64(base+spread)*ratio) + 1
		ch.combs[i] = newCombFilter(length)
	}
	for i, base := range allpassTuningL {
		length := int(float64(base+spread)*ratio) + 1
		ch.allpasses[i] = newAllpassFilter(length)
	}
	return ch
}

func (ch *channel) setFeedback(fb float64) {
	for _, c := range ch.combs {
		c.feedback = fb
	}
}

func (ch *channel) setDamping(damp float64) {
	for _, c := range ch.combs {
		c.setDamping(damp)
	}
}

func (ch *channel) process(in float64) float64 {
	var sum float64
	for _, c := range ch.combs {
		sum += c.process(in)
	}
	out := sum
	for _, a := range ch.allpasses {
		out = a.process(out)
	}
	return out
}

func (ch *channel) reset() {
	for _, c := range ch.combs {
		c.reset()
	}
	for _, a := range ch.allpasses {
		a.reset()
	}
}

// Reverb is a stereo Schroeder/Moorer reverb: 8 parallel comb filters per
// channel feeding 4 series allpass filters per channel, the right
// channel's lines offset by stereoSpread samples from the left. A mono
// (L+R) pre-mix drives both sides (§4.2).
//
// Roomsize/dampening/wet/width are stored as bit-cast atomics so the
// control thread can call the Set* methods while the RT thread is
// mid-Process, matching the lock-free parameter pattern the rest of this
// codebase uses for cross-thread values read every sample.
type Reverb struct {
	left  *channel
	right *channel

	sampleRate float64
	roomsize   atomicFloat
	dampening  atomicFloat
	wet        atomicFloat
	width      atomicFloat

	appliedRoomsize   float64
	appliedDampening  float64
}

// NewReverb creates a reverb at the given sample rate with defaults
// roomsize=0.5, dampening=0.5, wet=0.3, width=1.0.
func NewReverb(sampleRate float64) *Reverb {
	r := &Reverb{
		left:       newChannel(sampleRate, 0),
		right:      newChannel(sampleRate, stereoSpread),
		sampleRate: sampleRate,
	}
	r.wet.store(0.3)
	r.width.store(1.0)
	r.SetRoomsize(0.5)
	r.SetDampening(0.5)
	r.applyParameterChanges()
	return r
}

// SetRoomsize maps roomsize in [0,1] to comb feedback. Safe to call from
// the control thread concurrently with Process.
func (r *Reverb) SetRoomsize(roomsize float64) { r.roomsize.store(roomsize) }

// SetDampening maps dampening in [0,1] to the per-comb lowpass
// coefficient. Safe to call from the control thread concurrently with
// Process.
func (r *Reverb) SetDampening(dampening float64) { r.dampening.store(dampening) }

// SetWet sets the wet output level. Safe to call from the control thread
// concurrently with Process.
func (r *Reverb) SetWet(wet float64) { r.wet.store(wet) }

// SetWidth sets the stereo width of the wet signal, 0 = mono, 1 = full.
// Safe to call from the control thread concurrently with Process.
func (r *Reverb) SetWidth(width float64) { r.width.store(width) }

// applyParameterChanges recomputes comb coefficients only when the
// atomic roomsize/dampening values actually changed since the last
// sample, so Process does the cheap thing (two atomic loads) in the
// common case of an untouched reverb.
func (r *Reverb) applyParameterChanges() {
	if rs := r.roomsize.load(); rs != r.appliedRoomsize {
		r.appliedRoomsize = rs
		fb := 0.28 + rs*0.7
		r.left.setFeedback(fb)
		r.right.setFeedback(fb)
	}
	if dp := r.dampening.load(); dp != r.appliedDampening {
		r.appliedDampening = dp
		r.left.setDamping(dp * 0.4)
		r.right.setDamping(dp * 0.4)
	}
}

// Process renders one reverb sample from a mono aux input, returning a
// stereo pair.
func (r *Reverb) Process(monoIn float64) (left, right float64) {
	r.applyParameterChanges()
	outL := r.left.process(monoIn)
	outR := r.right.process(monoIn)

	wet := r.wet.load()
	width := r.width.load()
	wet1 := wet * (width/2 + 0.5)
	wet2 := wet * ((1 - width) / 2)

	left = outL*wet1 + outR*wet2
	right = outR*wet1 + outL*wet2
	left = dsp.SaturatingTanh(left)
	right = dsp.SaturatingTanh(right)
	return left, right
}

// Reset clears all comb and allpass state.
func (r *Reverb) Reset() {
	r.left.reset()
	r.right.reset()
}
