package tick

import "github.com/drunkcoder/ruffbox-go/internal/params"

// Record is one emitted trigger: a fully resolved event ready for the
// control-thread sink to prepare, parameterize, and trigger on the
// Playhead's queue (§6 "Trigger record").
type Record struct {
	SourceType params.SourceType
	SampleID   string
	Timestamp  float64
	Params     map[string]float32
}

// Sink receives trigger records as the driver produces them. A Sink
// implementation is expected to resolve SampleID to a prepared voice
// (via Controls) and submit it with Timestamp as the dispatch time.
type Sink interface {
	Emit(rec Record)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(rec Record)

// Emit calls f(rec).
func (f SinkFunc) Emit(rec Record) { f(rec) }
