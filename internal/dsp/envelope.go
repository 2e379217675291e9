package dsp

// EnvStage is one state of the Attack-Sustain-Release envelope state
// machine.
type EnvStage int

const (
	EnvAttack EnvStage = iota
	EnvSustain
	EnvRelease
	EnvOff
)

// Envelope is a simple Attack-Sustain-Release envelope: attack ramps
// linearly 0->1 over attackS seconds, sustain holds at 1 for sustainS
// seconds, release ramps linearly 1->0 over releaseS seconds and latches
// EnvOff (Finished) at the end. Modeled on the ASR state machine shape of
// the teacher's per-voice operator envelopes, with the decay stage
// dropped.
type Envelope struct {
	stage EnvStage
	level float64

	attackStep  float64
	sustainLeft float64
	releaseStep float64

	sampleRate float64
	attackS    float64
	sustainS   float64
	releaseS   float64
}

// NewEnvelope creates an envelope at the Attack stage, ready to render.
func NewEnvelope(sampleRate float64) *Envelope {
	e := &Envelope{sampleRate: sampleRate}
	e.SetTimes(0.01, 0.1, 0.05)
	return e
}

// SetTimes configures attack/sustain/release durations in seconds and
// recomputes per-sample step sizes. Valid only before trigger, per the
// Voice.set_parameter contract.
func (e *Envelope) SetTimes(attackS, sustainS, releaseS float64) {
	if attackS < 0 {
		attackS = 0
	}
	if sustainS < 0 {
		sustainS = 0
	}
	if releaseS < 0 {
		releaseS = 0
	}
	e.attackS, e.sustainS, e.releaseS = attackS, sustainS, releaseS
	if attackS <= 0 {
		e.attackStep = 1
	} else {
		e.attackStep = 1.0 / (attackS * e.sampleRate)
	}
	if releaseS <= 0 {
		e.releaseStep = 1
	} else {
		e.releaseStep = 1.0 / (releaseS * e.sampleRate)
	}
}

// Reset restarts the envelope from the Attack stage at zero level. Called
// once, at trigger.
func (e *Envelope) Reset() {
	e.stage = EnvAttack
	e.level = 0
	e.sustainLeft = e.sustainS * e.sampleRate
}

// Next advances the envelope by one sample and returns the current
// amplitude multiplier in [0, 1].
func (e *Envelope) Next() float64 {
	switch e.stage {
	case EnvAttack:
		e.level += e.attackStep
		if e.level >= 1 {
			e.level = 1
			e.stage = EnvSustain
			e.sustainLeft = e.sustainS * e.sampleRate
		}
	case EnvSustain:
		e.sustainLeft--
		if e.sustainLeft <= 0 {
			e.stage = EnvRelease
		}
	case EnvRelease:
		e.level -= e.releaseStep
		if e.level <= 0 {
			e.level = 0
			e.stage = EnvOff
		}
	case EnvOff:
		e.level = 0
	}
	return e.level
}

// Finished reports whether the envelope has latched EnvOff.
func (e *Envelope) Finished() bool { return e.stage == EnvOff }

// Stage returns the current envelope stage.
func (e *Envelope) Stage() EnvStage { return e.stage }

// AttackSeconds, SustainSeconds, and ReleaseSeconds return the currently
// configured stage durations, letting callers change one stage at a time
// via SetTimes without clobbering the others.
func (e *Envelope) AttackSeconds() float64  { return e.attackS }
func (e *Envelope) SustainSeconds() float64 { return e.sustainS }
func (e *Envelope) ReleaseSeconds() float64 { return e.releaseS }
