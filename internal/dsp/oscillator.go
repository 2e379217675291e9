// Package dsp holds the small, allocation-free signal-generation and
// shaping primitives shared by every voice variant and the master effects:
// oscillators, the ASR envelope, equal-power pan, the shared lowpass
// filter, Hermite sample interpolation, and the hashable-float wrapper.
package dsp

import "math"

// Phase tracks a free-running oscillator phase in [0, 1).
type Phase struct {
	pos float64
}

// Advance moves the phase forward by freqHz/sampleRate and wraps into
// [0, 1). Naive — no band-limiting, per the no-band-limited-synthesis
// non-goal.
func (p *Phase) Advance(freqHz, sampleRate float64) {
	p.pos += freqHz / sampleRate
	if p.pos >= 1 {
		p.pos -= math.Floor(p.pos)
	} else if p.pos < 0 {
		p.pos -= math.Floor(p.pos)
	}
}

// Value returns the current phase in [0, 1).
func (p *Phase) Value() float64 { return p.pos }

// Reset snaps the phase back to zero.
func (p *Phase) Reset() { p.pos = 0 }

// Sine evaluates a naive sine oscillator at the current phase.
func Sine(p *Phase) float64 {
	return math.Sin(2 * math.Pi * p.pos)
}

// LFSaw evaluates a naive (non-band-limited) rising sawtooth in [-1, 1].
func LFSaw(p *Phase) float64 {
	return 2*p.pos - 1
}

// LFSquare evaluates a naive square wave in {-1, 1} with the given
// pulsewidth (duty cycle) in (0, 1).
func LFSquare(p *Phase, pulsewidth float64) float64 {
	if pulsewidth <= 0 {
		pulsewidth = 0.5
	}
	if p.pos < pulsewidth {
		return 1
	}
	return -1
}

// NoteToFrequency converts a MIDI-style note number (69 = A4 = 440Hz) to
// hertz using equal temperament.
func NoteToFrequency(note float64) float64 {
	return 440.0 * math.Pow(2.0, (note-69.0)/12.0)
}
