package voice

import (
	"github.com/drunkcoder/ruffbox-go/internal/dsp"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

// LFSquare is a naive low-frequency square/pulse synth voice.
type LFSquare struct {
	oscBase
}

// NewLFSquare creates an LFSquare voice at the given render sample rate.
func NewLFSquare(sampleRate float64) *LFSquare {
	return &LFSquare{oscBase: newOscBase(sampleRate)}
}

func (s *LFSquare) SetParameter(id params.ID, value float64) {
	s.setCommonParameter(id, value)
}

func (s *LFSquare) Trigger()         { s.trigger() }
func (s *LFSquare) IsFinished() bool { return s.isFinished() }

func (s *LFSquare) GetNextBlock(startOffset int) Block {
	var block Block
	s.renderInto(&block, startOffset, func() float64 {
		return dsp.LFSquare(&s.phase, s.pulsewidth)
	})
	return block
}
