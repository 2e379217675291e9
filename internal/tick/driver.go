package tick

import (
	"sync"
	"time"

	"github.com/drunkcoder/ruffbox-go/internal/eventseq"
	"github.com/drunkcoder/ruffbox-go/internal/params"
)

const (
	defaultTempoMS    = 500.0
	defaultLookaheadS = 0.1
)

// SequenceSource is the narrow view of a pattern.Engine the driver
// needs: its current positionally-indexed sequence list.
type SequenceSource interface {
	Sequences() []*eventseq.EventSequence
}

// Option configures a Driver at construction.
type Option func(*Driver)

// WithTempoMS sets the tick period in milliseconds.
func WithTempoMS(tempoMs float64) Option {
	return func(d *Driver) { d.tempoMs = tempoMs }
}

// WithLookaheadS sets the scheduling lookahead added to every emitted
// trigger's timestamp (§4.8 default 100ms).
func WithLookaheadS(lookaheadS float64) Option {
	return func(d *Driver) { d.lookaheadS = lookaheadS }
}

// withSleepFunc overrides the sleep primitive; used by tests to drive
// the loop without wall-clock delay.
func withSleepFunc(fn func(time.Duration)) Option {
	return func(d *Driver) { d.sleepFn = fn }
}

// Driver is the control-thread tick loop (§4.8): on every tick it
// advances each live pattern sequence, translates the result into a
// Record for the Sink, and sleeps a drift-corrected interval computed
// from the host Clock before the next tick.
type Driver struct {
	source SequenceSource
	clock  Clock
	sink   Sink

	tempoMs    float64
	lookaheadS float64
	sleepFn    func(time.Duration)

	audioLogicalS    float64
	browserLogicalMs float64

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewDriver creates a Driver pulling sequences from source, emitting
// Records to sink, timed against clock.
func NewDriver(source SequenceSource, clock Clock, sink Sink, opts ...Option) *Driver {
	d := &Driver{
		source:     source,
		clock:      clock,
		sink:       sink,
		tempoMs:    defaultTempoMS,
		lookaheadS: defaultLookaheadS,
		sleepFn:    time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start launches the tick loop on a new goroutine. Calling Start while
// already running is a no-op.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true
	d.browserLogicalMs = d.clock.NowMS()
	d.stopCh = make(chan struct{})
	d.doneCh = make(chan struct{})
	go d.loop(d.stopCh, d.doneCh)
}

// Stop halts new triggers from being emitted; events already submitted
// downstream are never cancelled (§5 "no cancellation API").
func (d *Driver) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	stopCh := d.stopCh
	doneCh := d.doneCh
	d.mu.Unlock()

	close(stopCh)
	<-doneCh
}

func (d *Driver) loop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	for {
		select {
		case <-stopCh:
			return
		default:
		}
		d.tick()
	}
}

// tick performs one dispatch-and-sleep cycle: dispatch every sequence,
// compute the drift-corrected sleep duration, then advance the logical
// clocks (§4.8 steps 1-3).
func (d *Driver) tick() {
	d.dispatch()

	sleepMs := d.tempoMs - (d.clock.NowMS() - d.browserLogicalMs)
	if sleepMs > 0 {
		d.sleepFn(time.Duration(sleepMs * float64(time.Millisecond)))
	}

	d.audioLogicalS += d.tempoMs / 1000.0
	d.browserLogicalMs += d.tempoMs
}

func (d *Driver) dispatch() {
	for _, seq := range d.source.Sequences() {
		if seq == nil {
			continue
		}
		name, values := seq.NextEvent()
		if name == eventseq.SilentSymbol {
			continue
		}
		rec := Record{
			SourceType: params.SourceTypeForEventName(name),
			SampleID:   name,
			Timestamp:  d.audioLogicalS + d.lookaheadS,
			Params:     make(map[string]float32, len(values)),
		}
		for k, v := range values {
			rec.Params[k] = float32(v)
		}
		d.sink.Emit(rec)
	}
}
