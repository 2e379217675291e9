package dsp

import "math"

// EqualPowerPan computes left/right gains for a stereo position in
// [-1, +1] (-1 = hard left, 0 = center, +1 = hard right) using equal-power
// (sin/cos) panning, matching the angle computation used by the teacher's
// per-voice stereo placement.
func EqualPowerPan(position float64) (left, right float64) {
	if position < -1 {
		position = -1
	} else if position > 1 {
		position = 1
	}
	angle := (position + 1) * (math.Pi / 4) // 0 .. pi/2
	return math.Cos(angle), math.Sin(angle)
}
