package tick

import (
	"sync"
	"testing"
	"time"

	"github.com/drunkcoder/ruffbox-go/internal/eventseq"
	"github.com/drunkcoder/ruffbox-go/internal/params"
	"github.com/drunkcoder/ruffbox-go/internal/seqgen"
)

type fakeClock struct {
	mu  sync.Mutex
	now float64
}

func (c *fakeClock) NowMS() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(ms float64) {
	c.mu.Lock()
	c.now += ms
	c.mu.Unlock()
}

type fakeSource struct {
	seqs []*eventseq.EventSequence
}

func (s fakeSource) Sequences() []*eventseq.EventSequence { return s.seqs }

func buildSeq(names ...string) *eventseq.EventSequence {
	refs := make(map[uint64]eventseq.EventRef, len(names))
	hashes := make([]uint64, len(names))
	for i, n := range names {
		ref := eventseq.EventRef{Name: n}
		h := ref.Hash()
		refs[h] = ref
		hashes[i] = h
	}
	return eventseq.New(seqgen.NewCycle(hashes), nil, refs)
}

type collectingSink struct {
	mu   sync.Mutex
	recs []Record
}

func (s *collectingSink) Emit(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
}

func (s *collectingSink) snapshot() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.recs))
	copy(out, s.recs)
	return out
}

func TestDispatchSkipsSilentTicks(t *testing.T) {
	src := fakeSource{seqs: []*eventseq.EventSequence{buildSeq("bd", "~")}}
	sink := &collectingSink{}
	d := NewDriver(src, &fakeClock{}, sink, withSleepFunc(func(time.Duration) {}))

	d.tick()
	d.tick()

	recs := sink.snapshot()
	if len(recs) != 1 {
		t.Fatalf("expected exactly 1 emitted record (silent tick skipped), got %d", len(recs))
	}
	if recs[0].SampleID != "bd" {
		t.Fatalf("expected bd, got %q", recs[0].SampleID)
	}
}

func TestTimestampIncludesLookahead(t *testing.T) {
	src := fakeSource{seqs: []*eventseq.EventSequence{buildSeq("bd")}}
	sink := &collectingSink{}
	d := NewDriver(src, &fakeClock{}, sink, withSleepFunc(func(time.Duration) {}), WithLookaheadS(0.1))

	d.tick()
	recs := sink.snapshot()
	if recs[0].Timestamp != 0.1 {
		t.Fatalf("expected first tick timestamp 0.1 (0 + lookahead), got %v", recs[0].Timestamp)
	}

	d.tick()
	recs = sink.snapshot()
	wantSecond := d.tempoMs/1000.0 + 0.1
	if recs[1].Timestamp != wantSecond {
		t.Fatalf("expected second tick timestamp %v, got %v", wantSecond, recs[1].Timestamp)
	}
}

func TestSourceTypeDispatchByName(t *testing.T) {
	src := fakeSource{seqs: []*eventseq.EventSequence{buildSeq("sine", "saw", "sqr", "bd")}}
	sink := &collectingSink{}
	d := NewDriver(src, &fakeClock{}, sink, withSleepFunc(func(time.Duration) {}))

	for i := 0; i < 4; i++ {
		d.tick()
	}
	recs := sink.snapshot()
	want := []params.SourceType{params.SineSynth, params.LFSawSynth, params.LFSquareSynth, params.Sampler}
	for i, w := range want {
		if recs[i].SourceType != w {
			t.Fatalf("event %d: want %v, got %v", i, w, recs[i].SourceType)
		}
	}
}

func TestNegativeSleepFiresImmediately(t *testing.T) {
	clock := &fakeClock{}
	src := fakeSource{seqs: []*eventseq.EventSequence{buildSeq("bd")}}
	sink := &collectingSink{}
	slept := false
	d := NewDriver(src, clock, sink, withSleepFunc(func(time.Duration) { slept = true }))

	// Host clock already ahead of tempo: no sleep should occur.
	clock.advance(10000)
	d.tick()
	if slept {
		t.Fatal("expected no sleep when host clock has already outpaced the tick period")
	}
}

func TestStartStopDrainsWithoutPanic(t *testing.T) {
	src := fakeSource{seqs: []*eventseq.EventSequence{buildSeq("bd")}}
	sink := &collectingSink{}
	d := NewDriver(src, NewSystemClock(), sink, WithTempoMS(1))
	d.Start()
	time.Sleep(5 * time.Millisecond)
	d.Stop()
	if len(sink.snapshot()) == 0 {
		t.Fatal("expected at least one record emitted before stop")
	}
}
