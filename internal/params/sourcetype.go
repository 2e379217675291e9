package params

// SourceType selects which voice variant a prepared instance will render
// as. Codes are part of the external ABI.
type SourceType int

const (
	Sampler SourceType = iota
	SineOsc
	SineSynth
	LFSawSynth
	LFSquareSynth

	numSourceTypes
)

var sourceTypeNames = [numSourceTypes]string{
	Sampler:       "Sampler",
	SineOsc:       "SineOsc",
	SineSynth:     "SineSynth",
	LFSawSynth:    "LFSawSynth",
	LFSquareSynth: "LFSquareSynth",
}

func (t SourceType) String() string {
	if t < 0 || int(t) >= int(numSourceTypes) {
		return "Unknown"
	}
	return sourceTypeNames[t]
}

// SourceTypeForEventName implements the tick driver's dispatch rule from
// §4.8: sine -> Sine, saw -> LFSaw, sqr -> LFSquare, anything else ->
// Sampler.
func SourceTypeForEventName(name string) SourceType {
	switch name {
	case "sine":
		return SineSynth
	case "saw":
		return LFSawSynth
	case "sqr":
		return LFSquareSynth
	default:
		return Sampler
	}
}
