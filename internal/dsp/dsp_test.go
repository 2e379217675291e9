package dsp

import (
	"math"
	"testing"
)

func TestPhaseAdvanceWraps(t *testing.T) {
	var p Phase
	for i := 0; i < 100; i++ {
		p.Advance(440, 44100)
	}
	if p.Value() < 0 || p.Value() >= 1 {
		t.Fatalf("phase out of range: %v", p.Value())
	}
}

func TestEnvelopeASRShape(t *testing.T) {
	e := NewEnvelope(1000)
	e.SetTimes(0.01, 0.01, 0.01) // 10 samples each stage at 1kHz
	e.Reset()

	sawSustainPeak := false
	var last float64
	finishedAt := -1
	for i := 0; i < 200; i++ {
		v := e.Next()
		if v > 0.99 {
			sawSustainPeak = true
		}
		if e.Finished() && finishedAt == -1 {
			finishedAt = i
		}
		last = v
	}
	if !sawSustainPeak {
		t.Fatal("envelope never reached full level")
	}
	if finishedAt == -1 {
		t.Fatal("envelope never finished")
	}
	if last != 0 {
		t.Fatalf("expected zero level after finish, got %v", last)
	}
	// Latch: once finished, stays finished and zero forever.
	for i := 0; i < 10; i++ {
		if !e.Finished() || e.Next() != 0 {
			t.Fatal("finished latch did not hold")
		}
	}
}

func TestEqualPowerPanCenterIsEqual(t *testing.T) {
	l, r := EqualPowerPan(0)
	if math.Abs(l-r) > 1e-9 {
		t.Fatalf("expected equal gains at center, got l=%v r=%v", l, r)
	}
	sumSq := l*l + r*r
	if math.Abs(sumSq-1) > 1e-9 {
		t.Fatalf("expected constant power 1.0, got %v", sumSq)
	}
}

func TestEqualPowerPanHardSides(t *testing.T) {
	_, r := EqualPowerPan(-1)
	if r > 1e-9 {
		t.Fatalf("expected silent right at hard left, got %v", r)
	}
	l2, r2 := EqualPowerPan(1)
	if l2 > 1e-9 {
		t.Fatalf("expected silent left at hard right, got %v", l2)
	}
	_ = r2
}

func TestFloatKeyPreservesOrder(t *testing.T) {
	vals := []float64{-10, -1, -0.5, 0, 0.5, 1, 10}
	for i := 1; i < len(vals); i++ {
		a := NewFloatKey(vals[i-1])
		b := NewFloatKey(vals[i])
		if !(a < b) {
			t.Fatalf("expected key(%v) < key(%v), got %v >= %v", vals[i-1], vals[i], a, b)
		}
	}
}

func TestHermite4PassesThroughKnownPoints(t *testing.T) {
	// At frac=0, result should equal y1; interpolation between equal
	// neighbors should reproduce a constant signal.
	v := Hermite4(1, 1, 1, 1, 0.5)
	if math.Abs(v-1) > 1e-9 {
		t.Fatalf("expected constant passthrough, got %v", v)
	}
	v0 := Hermite4(0, 5, 9, 12, 0)
	if math.Abs(v0-5) > 1e-9 {
		t.Fatalf("expected Hermite4(...,0)==y1, got %v", v0)
	}
}

func TestLowpass3PoleAttenuatesHighFrequency(t *testing.T) {
	f := NewLowpass3Pole(200, 44100)
	// Feed a high-frequency square-ish alternating signal; output RMS
	// should be much smaller than input RMS after settling.
	var outSum float64
	for i := 0; i < 1000; i++ {
		in := 1.0
		if i%2 == 0 {
			in = -1.0
		}
		out := f.Process(in)
		if i > 500 {
			outSum += out * out
		}
	}
	rms := math.Sqrt(outSum / 500)
	if rms > 0.5 {
		t.Fatalf("expected strong attenuation of nyquist-ish signal, got rms=%v", rms)
	}
}
