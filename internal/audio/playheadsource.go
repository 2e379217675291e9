package audio

import "github.com/drunkcoder/ruffbox-go/internal/playhead"

// PlayheadSource adapts a *playhead.Playhead, which only ever renders
// exactly one fixed-size block at a time, to the SampleSource interface
// StreamReader expects, which may ask for an arbitrary byte count per
// Read. It renders one Playhead block per underlying call and carries
// any unconsumed tail across Process calls.
type PlayheadSource struct {
	ph         *playhead.Playhead
	sampleRate float64

	streamTimeS float64
	carry       []float32
	carryPos    int
}

// NewPlayheadSource wraps ph for playback at sampleRate.
func NewPlayheadSource(ph *playhead.Playhead, sampleRate float64) *PlayheadSource {
	return &PlayheadSource{
		ph:         ph,
		sampleRate: sampleRate,
		carry:      make([]float32, 0, 2*playhead.BlockSize),
	}
}

// Process fills dst with interleaved stereo float32 samples, rendering
// additional Playhead blocks as needed.
func (s *PlayheadSource) Process(dst []float32) {
	written := 0
	for written < len(dst) {
		if s.carryPos < len(s.carry) {
			n := copy(dst[written:], s.carry[s.carryPos:])
			written += n
			s.carryPos += n
			continue
		}
		s.renderBlock()
	}
}

func (s *PlayheadSource) renderBlock() {
	blk := s.ph.Process(s.streamTimeS)
	s.streamTimeS += float64(playhead.BlockSize) / s.sampleRate

	s.carry = s.carry[:0]
	for i := 0; i < playhead.BlockSize; i++ {
		s.carry = append(s.carry, float32(blk[0][i]), float32(blk[1][i]))
	}
	s.carryPos = 0
}

// StreamTimeS returns the stream time that will be used to render the
// next Playhead block.
func (s *PlayheadSource) StreamTimeS() float64 { return s.streamTimeS }
