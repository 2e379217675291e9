package controls

import (
	"github.com/drunkcoder/ruffbox-go/internal/effects"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

// Option configures a Controls at construction, following the
// functional-options pattern used throughout this codebase.
type Option func(*Controls)

// WithMasterEffects binds the Playhead's master reverb and delay so
// SetMasterParameter has somewhere to dispatch to. The Set* methods on
// both are lock-free (bit-cast atomics), so calling them from the
// control thread while the RT thread is mid-Process is safe.
func WithMasterEffects(reverb *effects.Reverb, delay *effects.Delay) Option {
	return func(c *Controls) {
		c.masterReverb = reverb
		c.masterDelay = delay
	}
}

// SetMasterParameter assigns a master reverb/delay parameter. Unknown
// parameter IDs are a silent no-op (§7 UnknownParameter).
func (c *Controls) SetMasterParameter(param params.ID, value float64) {
	switch param {
	case params.ReverbRoomsize:
		if c.masterReverb != nil {
			c.masterReverb.SetRoomsize(value)
		}
	case params.ReverbDampening:
		if c.masterReverb != nil {
			c.masterReverb.SetDampening(value)
		}
	case params.ReverbMix:
		if c.masterReverb != nil {
			c.masterReverb.SetWet(value)
		}
	case params.DelayTime:
		if c.masterDelay != nil {
			c.masterDelay.SetTime(value)
		}
	case params.DelayFeedback:
		if c.masterDelay != nil {
			c.masterDelay.SetFeedback(value)
		}
	case params.DelayDampeningFrequency:
		if c.masterDelay != nil {
			c.masterDelay.SetDampeningFrequency(value)
		}
	case params.DelayMix:
		if c.masterDelay != nil {
			c.masterDelay.SetWet(value)
		}
	}
}
