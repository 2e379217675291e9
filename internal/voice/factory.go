package voice

import "github.com/drunkcoder/ruffbox-go/internal/params"

// New builds a Voice of the given variant. Sampler instances are bound to
// buf, which may be nil (a sampler with no buffer renders silence until
// one is attached via SetBuffer).
func New(sourceType params.SourceType, sampleRate float64, buf *SampleBuffer) Voice {
	switch sourceType {
	case params.SineSynth, params.SineOsc:
		return NewSine(sampleRate)
	case params.LFSawSynth:
		return NewLFSaw(sampleRate)
	case params.LFSquareSynth:
		return NewLFSquare(sampleRate)
	default:
		return NewSampler(sampleRate, buf)
	}
}
