package voice

import (
	"github.com/drunkcoder/ruffbox-go/internal/dsp"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

// oscBase is the shared source -> optional lowpass -> envelope -> pan
// chain used by the three synth voice variants (Sine, LFSaw, LFSquare).
// Each variant supplies its own waveform sample function.
type oscBase struct {
	auxLevels

	sampleRate float64
	phase      dsp.Phase
	freqHz     float64
	pulsewidth float64

	level    float64
	pan      float64
	lowpass  *dsp.Lowpass3Pole
	lpCutoff float64
	lpQ      float64
	lpDist   float64

	env *dsp.Envelope
}

func newOscBase(sampleRate float64) oscBase {
	return oscBase{
		sampleRate: sampleRate,
		freqHz:     440,
		pulsewidth: 0.5,
		level:      1,
		lpCutoff:   20000,
		env:        dsp.NewEnvelope(sampleRate),
	}
}

// setCommonParameter handles the parameters shared by every synth
// variant. Returns true if the id was recognized.
func (o *oscBase) setCommonParameter(id params.ID, value float64) bool {
	if o.auxLevels.setAuxParameter(id, value) {
		return true
	}
	switch id {
	case params.PitchFrequency:
		o.freqHz = value
	case params.PitchNote:
		o.freqHz = dsp.NoteToFrequency(value)
	case params.Level:
		o.level = value
	case params.StereoPosition:
		o.pan = value
	case params.Pulsewidth:
		o.pulsewidth = value
	case params.Attack:
		o.env.SetTimes(value, o.env.SustainSeconds(), o.env.ReleaseSeconds())
	case params.Sustain:
		o.env.SetTimes(o.env.AttackSeconds(), value, o.env.ReleaseSeconds())
	case params.Release:
		o.env.SetTimes(o.env.AttackSeconds(), o.env.SustainSeconds(), value)
	case params.LowpassCutoffFrequency:
		o.lpCutoff = value
		if o.lowpass != nil {
			o.lowpass.SetCutoff(o.lpCutoff, o.sampleRate)
		}
	case params.LowpassQFactor:
		o.lpQ = value
	case params.LowpassFilterDistortion:
		o.lpDist = value
		if o.lowpass == nil {
			o.lowpass = dsp.NewLowpass3Pole(o.lpCutoff, o.sampleRate)
		}
		o.lowpass.SetDistortion(o.lpDist)
	default:
		return false
	}
	return true
}

func (o *oscBase) trigger() {
	o.phase.Reset()
	o.env.Reset()
	if o.lowpass != nil {
		o.lowpass.Reset()
	}
}

func (o *oscBase) isFinished() bool { return o.env.Finished() }

// renderInto fills block starting at startOffset using sampleFn to
// produce the raw waveform value at each step.
func (o *oscBase) renderInto(block *Block, startOffset int, sampleFn func() float64) {
	for i := startOffset; i < BlockSize; i++ {
		raw := sampleFn()
		o.phase.Advance(o.freqHz, o.sampleRate)
		env := o.env.Next()
		sample := raw * env * o.level
		if o.lowpass != nil {
			sample = o.lowpass.Process(sample)
		}
		l, r := dsp.EqualPowerPan(o.pan)
		block[0][i] = sample * l
		block[1][i] = sample * r
	}
}
