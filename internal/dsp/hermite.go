package dsp

// Hermite4 performs 4-point, 3rd-order Hermite interpolation between y1
// and y2 given the neighboring samples y0 (before) and y3 (after), at
// fractional position frac in [0, 1). This is why SampleBuffer requires
// one guard sample before index 0 and two after the last: every lookup
// this function performs is in-bounds.
func Hermite4(y0, y1, y2, y3, frac float64) float64 {
	c0 := y1
	c1 := 0.5 * (y2 - y0)
	c2 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c3 := 0.5*(y3-y0) + 1.5*(y1-y2)
	return ((c3*frac+c2)*frac+c1)*frac + c0
}
