package voice

import (
	"github.com/drunkcoder/ruffbox-go/internal/dsp"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

// Sine is a naive sine-wave synth voice.
type Sine struct {
	oscBase
}

// NewSine creates a sine voice at the given render sample rate.
func NewSine(sampleRate float64) *Sine {
	return &Sine{oscBase: newOscBase(sampleRate)}
}

func (s *Sine) SetParameter(id params.ID, value float64) {
	s.setCommonParameter(id, value)
}

func (s *Sine) Trigger()           { s.trigger() }
func (s *Sine) IsFinished() bool   { return s.isFinished() }

func (s *Sine) GetNextBlock(startOffset int) Block {
	var block Block
	s.renderInto(&block, startOffset, func() float64 {
		return dsp.Sine(&s.phase)
	})
	return block
}
