package effects

import "github.com/drunkcoder/ruffbox-go/internal/dsp"

// maxDelayMs is the capacity ceiling each delay line pre-allocates at
// construction. SetTime only ever moves the read cursor within this
// fixed allocation — it never reallocates on the RT path, mirroring the
// original engine's fixed-max-buffer delay line.
const maxDelayMs = 2000.0

// delayLine is one independent mono delay line: a fixed-capacity ring
// buffer, a configurable current length within that capacity, a feedback
// coefficient, and a dampening lowpass in the feedback path.
type delayLine struct {
	buf        []float64
	writePos   int
	length     int // current delay length in samples, <= len(buf)
	feedback   float64
	dampen     dsp.OnePole
	sampleRate float64
}

func newDelayLine(sampleRate float64) *delayLine {
	capacity := int(maxDelayMs / 1000.0 * sampleRate)
	if capacity < 1 {
		capacity = 1
	}
	d := &delayLine{
		buf:        make([]float64, capacity),
		sampleRate: sampleRate,
	}
	d.dampen.SetCutoff(3000, sampleRate)
	return d
}

// setLength sets the current delay length in samples, clamped to the
// fixed capacity ceiling.
func (d *delayLine) setLength(samples int) {
	if samples < 1 {
		samples = 1
	}
	if samples > len(d.buf) {
		samples = len(d.buf)
	}
	d.length = samples
}

func (d *delayLine) process(in float64) float64 {
	readPos := d.writePos - d.length
	if readPos < 0 {
		readPos += len(d.buf)
	}
	delayed := d.buf[readPos]
	fed := d.dampen.Process(delayed) * d.feedback
	d.buf[d.writePos] = dsp.SaturatingTanh(in + fed)
	d.writePos++
	if d.writePos >= len(d.buf) {
		d.writePos = 0
	}
	return delayed
}

func (d *delayLine) reset() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.writePos = 0
	d.dampen.Reset()
}

// Delay is the master delay effect: two independent mono delay lines
// (§4.2), one per stereo channel, each with a fixed capacity ceiling, a
// configurable current length, a feedback coefficient, and a dampening
// lowpass in the feedback path. Defaults: length 256ms, feedback 0.5,
// dampening cutoff 3000Hz.
//
// Time/feedback/dampening/wet are bit-cast atomics, the same lock-free
// pattern Reverb uses, so set_master_parameter calls from the control
// thread never race the RT thread's Process call.
type Delay struct {
	left, right *delayLine
	sampleRate  float64

	timeMs     atomicFloat
	feedback   atomicFloat
	dampeningHz atomicFloat
	wet        atomicFloat

	appliedTimeMs      float64
	appliedFeedback    float64
	appliedDampeningHz float64
}

// NewDelay creates a stereo delay at sampleRate with default parameters.
func NewDelay(sampleRate float64) *Delay {
	d := &Delay{
		left:       newDelayLine(sampleRate),
		right:      newDelayLine(sampleRate),
		sampleRate: sampleRate,
	}
	d.wet.store(1.0)
	d.SetTime(256)
	d.SetFeedback(0.5)
	d.SetDampeningFrequency(3000)
	d.applyParameterChanges()
	return d
}

// SetTime sets the current delay length in milliseconds, clamped to the
// fixed capacity ceiling (maxDelayMs). Safe to call concurrently with
// Process.
func (d *Delay) SetTime(ms float64) { d.timeMs.store(ms) }

// SetFeedback sets the feedback coefficient for both channels. Safe to
// call concurrently with Process.
func (d *Delay) SetFeedback(fb float64) { d.feedback.store(fb) }

// SetDampeningFrequency sets the feedback-path lowpass cutoff for both
// channels. Safe to call concurrently with Process.
func (d *Delay) SetDampeningFrequency(hz float64) { d.dampeningHz.store(hz) }

// SetWet sets the wet output level. Safe to call concurrently with
// Process.
func (d *Delay) SetWet(wet float64) { d.wet.store(wet) }

func (d *Delay) applyParameterChanges() {
	if ms := d.timeMs.load(); ms != d.appliedTimeMs {
		d.appliedTimeMs = ms
		samples := int(ms / 1000.0 * d.sampleRate)
		d.left.setLength(samples)
		d.right.setLength(samples)
	}
	if fb := d.feedback.load(); fb != d.appliedFeedback {
		d.appliedFeedback = fb
		d.left.feedback = fb
		d.right.feedback = fb
	}
	if hz := d.dampeningHz.load(); hz != d.appliedDampeningHz {
		d.appliedDampeningHz = hz
		d.left.dampen.SetCutoff(hz, d.sampleRate)
		d.right.dampen.SetCutoff(hz, d.sampleRate)
	}
}

// Process renders one stereo sample through both delay lines.
func (d *Delay) Process(l, r float64) (outL, outR float64) {
	d.applyParameterChanges()
	wet := d.wet.load()
	wl := d.left.process(l)
	wr := d.right.process(r)
	return wl * wet, wr * wet
}

// Reset clears both delay lines.
func (d *Delay) Reset() {
	d.left.reset()
	d.right.reset()
}
