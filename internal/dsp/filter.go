package dsp

import "math"

// OnePole is a one-pole lowpass filter stage, the basic building block
// cascaded three deep by Lowpass3Pole and used standalone as the master
// delay's feedback dampening filter.
type OnePole struct {
	alpha float64
	state float64
}

// SetCutoff recomputes the filter coefficient for the given cutoff
// frequency and sample rate.
func (f *OnePole) SetCutoff(cutoffHz, sampleRate float64) {
	if cutoffHz <= 0 {
		cutoffHz = 1
	}
	dt := 1.0 / sampleRate
	rc := 1.0 / (2.0 * math.Pi * cutoffHz)
	f.alpha = dt / (rc + dt)
}

// Process filters one sample.
func (f *OnePole) Process(in float64) float64 {
	f.state += f.alpha * (in - f.state)
	return f.state
}

// Reset clears filter state.
func (f *OnePole) Reset() { f.state = 0 }

// Lowpass3Pole cascades three OnePole stages for an 18dB/oct rolloff and
// applies optional tanh saturation to its input. It is used by the voice
// lowpass stage; the stages have no saturation in their feedback path,
// and neither master effect uses this filter.
type Lowpass3Pole struct {
	stages     [3]OnePole
	distortion float64
}

// NewLowpass3Pole creates a filter at the given cutoff.
func NewLowpass3Pole(cutoffHz, sampleRate float64) *Lowpass3Pole {
	f := &Lowpass3Pole{}
	f.SetCutoff(cutoffHz, sampleRate)
	return f
}

// SetCutoff recomputes all three stage coefficients.
func (f *Lowpass3Pole) SetCutoff(cutoffHz, sampleRate float64) {
	for i := range f.stages {
		f.stages[i].SetCutoff(cutoffHz, sampleRate)
	}
}

// SetDistortion sets the tanh saturation drive applied before filtering;
// 0 disables saturation.
func (f *Lowpass3Pole) SetDistortion(amount float64) {
	f.distortion = amount
}

// Process filters one sample through all three poles with saturation.
func (f *Lowpass3Pole) Process(in float64) float64 {
	x := in
	if f.distortion > 0 {
		x = math.Tanh(x * (1 + f.distortion))
	}
	for i := range f.stages {
		x = f.stages[i].Process(x)
	}
	return x
}

// Reset clears all stage state.
func (f *Lowpass3Pole) Reset() {
	for i := range f.stages {
		f.stages[i].Reset()
	}
}

// SaturatingTanh applies tanh soft clipping, used in the delay/reverb
// feedback and output paths.
func SaturatingTanh(x float64) float64 {
	return math.Tanh(x)
}
