// Package voice implements the four voice variants (Sine, LFSaw, LFSquare,
// Sampler), each an ordered chain of source -> optional lowpass -> ASR
// envelope -> equal-power pan, dispatching parameters by name.
package voice

import "github.com/drunkcoder/ruffbox-go/internal/params"

// BlockSize is the fixed number of frames rendered per call to
// GetNextBlock, matching the Playhead's fixed block size (§6, default
// 128).
const BlockSize = 128

// Block is one stereo block of audio: Block[0] is left, Block[1] is
// right.
type Block = [2][BlockSize]float64

// Voice is the common contract every variant implements (§4.1).
type Voice interface {
	// SetParameter assigns a parameter value. Valid only before Trigger
	// (from the preparing side). An unrecognized param is a silent no-op.
	SetParameter(id params.ID, value float64)

	// IsFinished latches true once the voice's envelope completes release
	// and never reverts.
	IsFinished() bool

	// GetNextBlock renders exactly one block of BlockSize frames; samples
	// before startOffset are zero. startOffset must be in [0, BlockSize).
	GetNextBlock(startOffset int) Block

	// ReverbLevel and DelayLevel are the per-voice aux-send gains, taken
	// from the ReverbMix/DelayMix parameters as last set via SetParameter.
	ReverbLevel() float64
	DelayLevel() float64

	// Trigger latches the voice into its running state, resetting
	// internal DSP state (envelope, phase or playback position). Called
	// exactly once, by the Playhead, when the voice is dispatched.
	Trigger()
}

// auxLevels is embedded by every variant to implement the aux-send half
// of the Voice contract uniformly.
type auxLevels struct {
	reverbMix float64
	delayMix  float64
}

func (a *auxLevels) ReverbLevel() float64 { return a.reverbMix }
func (a *auxLevels) DelayLevel() float64  { return a.delayMix }

func (a *auxLevels) setAuxParameter(id params.ID, value float64) bool {
	switch id {
	case params.ReverbMix:
		a.reverbMix = value
		return true
	case params.DelayMix:
		a.delayMix = value
		return true
	}
	return false
}
