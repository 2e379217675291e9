package voice

import (
	"math"
	"testing"

	"github.com/drunkcoder/ruffbox-go/internal/params"
)

func TestSineVoiceFinishLatch(t *testing.T) {
	v := NewSine(1000)
	v.SetParameter(params.Attack, 0.001)
	v.SetParameter(params.Sustain, 0.001)
	v.SetParameter(params.Release, 0.001)
	v.SetParameter(params.PitchFrequency, 100)
	v.Trigger()

	finished := false
	for i := 0; i < 20; i++ {
		wasFinished := v.IsFinished()
		blk := v.GetNextBlock(0)
		if wasFinished {
			finished = true
			for _, s := range blk[0] {
				if s != 0 {
					t.Fatalf("expected silence after finish, got %v", s)
				}
			}
		}
	}
	if !finished {
		t.Fatal("sine voice never finished")
	}
	// Latch holds.
	blk := v.GetNextBlock(0)
	if !v.IsFinished() {
		t.Fatal("finished latch did not hold")
	}
	for _, s := range blk[0] {
		if s != 0 {
			t.Fatal("expected zero block forever after finish")
		}
	}
}

func TestStartOffsetZerosLeadingSamples(t *testing.T) {
	v := NewSine(44100)
	v.SetParameter(params.Attack, 0)
	v.SetParameter(params.Sustain, 10)
	v.SetParameter(params.Release, 0.1)
	v.SetParameter(params.Level, 1)
	v.Trigger()

	offset := 10
	blk := v.GetNextBlock(offset)
	for i := 0; i < offset; i++ {
		if blk[0][i] != 0 || blk[1][i] != 0 {
			t.Fatalf("expected zero before start_offset at index %d", i)
		}
	}
}

func TestSamplerLoopsAndInterpolates(t *testing.T) {
	samples := make([]float32, 100)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * float64(i) / 100))
	}
	buf := NewSampleBuffer(samples, 1000)
	s := NewSampler(1000, buf)
	s.SetParameter(params.PlaybackRate, 0.5)
	s.SetParameter(params.PlaybackLoop, 1)
	s.SetParameter(params.Attack, 0)
	s.SetParameter(params.Sustain, 10)
	s.SetParameter(params.Release, 0.01)
	s.Trigger()

	for i := 0; i < 500; i++ {
		blk := s.GetNextBlock(0)
		for _, v := range blk[0] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("sampler produced invalid sample: %v", v)
			}
		}
	}
}

func TestUnknownParameterIsNoOp(t *testing.T) {
	v := NewSine(44100)
	v.SetParameter(params.ID(999), 42)
	// No panic, no observable effect beyond default state.
}
