package voice

import (
	"github.com/drunkcoder/ruffbox-go/internal/dsp"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

// Sampler plays back a shared SampleBuffer with Hermite-interpolated
// fractional playback rate, looping by default. Non-looping is selected
// by setting Sustain to the buffer duration minus Release (§4.1).
type Sampler struct {
	auxLevels

	sampleRate float64
	buffer     *SampleBuffer

	level    float64
	pan      float64
	rate     float64
	startS   float64
	loop     bool
	position float64 // fractional sample index into the buffer

	lowpass  *dsp.Lowpass3Pole
	lpCutoff float64
	lpDist   float64

	env *dsp.Envelope
}

// NewSampler creates a sampler voice bound to buf, rendering at
// sampleRate.
func NewSampler(sampleRate float64, buf *SampleBuffer) *Sampler {
	return &Sampler{
		sampleRate: sampleRate,
		buffer:     buf,
		level:      1,
		rate:       1,
		loop:       true,
		lpCutoff:   20000,
		env:        dsp.NewEnvelope(sampleRate),
	}
}

// SetBuffer rebinds the voice to a different shared sample buffer. Valid
// only before Trigger.
func (s *Sampler) SetBuffer(buf *SampleBuffer) { s.buffer = buf }

func (s *Sampler) SetParameter(id params.ID, value float64) {
	if s.auxLevels.setAuxParameter(id, value) {
		return
	}
	switch id {
	case params.Level:
		s.level = value
	case params.StereoPosition:
		s.pan = value
	case params.PlaybackRate:
		s.rate = value
	case params.PlaybackStart:
		s.startS = value
	case params.PlaybackLoop:
		s.loop = value != 0
	case params.Attack:
		s.env.SetTimes(value, s.env.SustainSeconds(), s.env.ReleaseSeconds())
	case params.Sustain:
		s.env.SetTimes(s.env.AttackSeconds(), value, s.env.ReleaseSeconds())
	case params.Release:
		s.env.SetTimes(s.env.AttackSeconds(), s.env.SustainSeconds(), value)
	case params.LowpassCutoffFrequency:
		s.lpCutoff = value
		if s.lowpass != nil {
			s.lowpass.SetCutoff(s.lpCutoff, s.sampleRate)
		}
	case params.LowpassFilterDistortion:
		s.lpDist = value
		if s.lowpass == nil {
			s.lowpass = dsp.NewLowpass3Pole(s.lpCutoff, s.sampleRate)
		}
		s.lowpass.SetDistortion(s.lpDist)
	}
}

func (s *Sampler) Trigger() {
	bufRate := s.sampleRate
	if s.buffer != nil && s.buffer.SampleRate() > 0 {
		bufRate = s.buffer.SampleRate()
	}
	s.position = s.startS * bufRate
	s.env.Reset()
	if s.lowpass != nil {
		s.lowpass.Reset()
	}
}

func (s *Sampler) IsFinished() bool {
	if s.env.Finished() {
		return true
	}
	if s.buffer != nil && !s.loop && int(s.position) >= s.buffer.Len() {
		return true
	}
	return false
}

func (s *Sampler) GetNextBlock(startOffset int) Block {
	var block Block
	if s.buffer == nil {
		return block
	}
	bufRate := s.buffer.SampleRate()
	if bufRate <= 0 {
		bufRate = s.sampleRate
	}
	step := s.rate * (bufRate / s.sampleRate)
	n := s.buffer.Len()

	for i := startOffset; i < BlockSize; i++ {
		if s.loop && n > 0 {
			for s.position >= float64(n) {
				s.position -= float64(n)
			}
			for s.position < 0 {
				s.position += float64(n)
			}
		}

		var sample float64
		if !s.loop && int(s.position) >= n {
			sample = 0
		} else {
			idx := int(s.position)
			frac := s.position - float64(idx)
			if step == 1 {
				sample = float64(s.buffer.At(idx))
			} else {
				y0 := float64(s.buffer.At(idx - 1))
				y1 := float64(s.buffer.At(idx))
				y2 := float64(s.buffer.At(idx + 1))
				y3 := float64(s.buffer.At(idx + 2))
				sample = dsp.Hermite4(y0, y1, y2, y3, frac)
			}
		}

		env := s.env.Next()
		sample *= env * s.level
		if s.lowpass != nil {
			sample = s.lowpass.Process(sample)
		}
		l, r := dsp.EqualPowerPan(s.pan)
		block[0][i] = sample * l
		block[1][i] = sample * r

		s.position += step
	}
	return block
}
