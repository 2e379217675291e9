// Package playhead implements the sample-accurate, fixed-block stereo
// mixer (§4.3): it owns the running voice list and the pending-event
// heap, drains newly prepared voices off a lock-free queue, and renders
// one fixed-size stereo block per Process call.
package playhead

import (
	"math"

	"github.com/drunkcoder/ruffbox-go/internal/effects"
	"github.com/drunkcoder/ruffbox-go/internal/queue"
	"github.com/drunkcoder/ruffbox-go/internal/voice"
)

// BlockSize is the fixed number of frames rendered per Process call.
const BlockSize = voice.BlockSize

// preallocCapacity is the minimum pre-sized capacity for the running
// list and pending heap, so the RT path never grows them by allocating
// (§5 "Containers pre-sized (>=600 entries)").
const preallocCapacity = 600

// Option configures a Playhead at construction.
type Option func(*Playhead)

// WithOnLateEvent installs a diagnostic hook invoked whenever a trigger
// arrives with a timestamp at or before the current render time (§7
// LateEvent: "an optional diagnostic channel is a hook point, not
// required").
func WithOnLateEvent(fn func(timestamp, nowS float64)) Option {
	return func(p *Playhead) { p.onLateEvent = fn }
}

// Playhead is the RT-path audio scheduler and mixer.
type Playhead struct {
	sampleRate float64

	running []voice.Voice
	pending pendingHeap
	queueRx *queue.Queue

	masterReverb *effects.Reverb
	masterDelay  *effects.Delay

	nowS float64

	onLateEvent func(timestamp, nowS float64)

	// Scratch accumulators reused across calls to avoid RT-path
	// allocation.
	reverbIn [BlockSize]float64
	delayInL [BlockSize]float64
	delayInR [BlockSize]float64
}

// New creates a Playhead rendering at sampleRate, consuming scheduled
// events from q.
func New(sampleRate float64, q *queue.Queue, opts ...Option) *Playhead {
	p := &Playhead{
		sampleRate:   sampleRate,
		running:      make([]voice.Voice, 0, preallocCapacity),
		pending:      newPendingHeap(preallocCapacity),
		queueRx:      q,
		masterReverb: effects.NewReverb(sampleRate),
		masterDelay:  effects.NewDelay(sampleRate),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MasterReverb exposes the master reverb for parameter changes from the
// non-RT control side (set_master_parameter).
func (p *Playhead) MasterReverb() *effects.Reverb { return p.masterReverb }

// MasterDelay exposes the master delay for parameter changes from the
// non-RT control side (set_master_parameter).
func (p *Playhead) MasterDelay() *effects.Delay { return p.masterDelay }

// NowS returns the render time set by the most recent Process call, used
// by the tick driver's trigger timestamps.
func (p *Playhead) NowS() float64 { return p.nowS }

// RunningCount returns the number of currently active voices, for tests
// and diagnostics.
func (p *Playhead) RunningCount() int { return len(p.running) }

// PendingCount returns the number of voices waiting in the pending heap.
func (p *Playhead) PendingCount() int { return p.pending.Len() }

// Process renders exactly one block at streamTimeS, implementing the
// six-step algorithm of §4.3.
func (p *Playhead) Process(streamTimeS float64) voice.Block {
	var out voice.Block

	// 1. Set now_s; zero accumulators.
	p.nowS = streamTimeS
	for i := 0; i < BlockSize; i++ {
		p.reverbIn[i] = 0
		p.delayInL[i] = 0
		p.delayInR[i] = 0
	}

	// 2. Garbage-collect running: drop finished voices.
	kept := p.running[:0]
	for _, v := range p.running {
		if !v.IsFinished() {
			kept = append(kept, v)
		}
	}
	p.running = kept

	samplePeriodS := 1.0 / p.sampleRate
	blockDurationS := float64(BlockSize) * samplePeriodS
	blockEnd := p.nowS + blockDurationS

	// 3. Drain the queue non-blockingly.
	for {
		ev, ok := p.queueRx.TryPop()
		if !ok {
			break
		}
		if ev.Timestamp <= p.nowS {
			if p.onLateEvent != nil {
				p.onLateEvent(ev.Timestamp, p.nowS)
			}
			ev.Voice.Trigger()
			p.running = append(p.running, ev.Voice)
		} else {
			p.pending.Push(ev)
		}
	}

	// 4. Render running voices with start_offset = 0.
	for _, v := range p.running {
		blk := v.GetNextBlock(0)
		p.accumulate(&out, blk, v)
	}

	// 5. Dispatch pending events whose timestamp falls within this block.
	for p.pending.Len() > 0 && p.pending.Peek().Timestamp < blockEnd {
		ev := p.pending.Pop()
		startOffset := int(math.Round((ev.Timestamp - p.nowS) / samplePeriodS))
		if startOffset < 0 {
			startOffset = 0
		}
		if startOffset >= BlockSize {
			startOffset = BlockSize - 1
		}
		ev.Voice.Trigger()
		blk := ev.Voice.GetNextBlock(startOffset)
		p.accumulate(&out, blk, ev.Voice)
		if !ev.Voice.IsFinished() {
			p.running = append(p.running, ev.Voice)
		}
	}

	// 6. Render master effects over their accumulators and add to dry.
	for i := 0; i < BlockSize; i++ {
		rl, rr := p.masterReverb.Process(p.reverbIn[i])
		dl, dr := p.masterDelay.Process(p.delayInL[i], p.delayInR[i])
		out[0][i] += rl + dl
		out[1][i] += rr + dr
	}

	return out
}

func (p *Playhead) accumulate(out *voice.Block, blk voice.Block, v voice.Voice) {
	reverbLevel := v.ReverbLevel()
	delayLevel := v.DelayLevel()
	for i := 0; i < BlockSize; i++ {
		l, r := blk[0][i], blk[1][i]
		out[0][i] += l
		out[1][i] += r
		if reverbLevel != 0 {
			p.reverbIn[i] += (l + r) * reverbLevel
		}
		if delayLevel != 0 {
			p.delayInL[i] += l * delayLevel
			p.delayInR[i] += r * delayLevel
		}
	}
}
