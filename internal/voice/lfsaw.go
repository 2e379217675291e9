package voice

import (
	"github.com/drunkcoder/ruffbox-go/internal/dsp"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

// LFSaw is a naive (non-band-limited) low-frequency sawtooth synth voice.
type LFSaw struct {
	oscBase
}

// NewLFSaw creates an LFSaw voice at the given render sample rate.
func NewLFSaw(sampleRate float64) *LFSaw {
	return &LFSaw{oscBase: newOscBase(sampleRate)}
}

func (s *LFSaw) SetParameter(id params.ID, value float64) {
	s.setCommonParameter(id, value)
}

func (s *LFSaw) Trigger()         { s.trigger() }
func (s *LFSaw) IsFinished() bool { return s.isFinished() }

func (s *LFSaw) GetNextBlock(startOffset int) Block {
	var block Block
	s.renderInto(&block, startOffset, func() float64 {
		return dsp.LFSaw(&s.phase)
	})
	return block
}
