// Package controls implements the non-realtime side of the engine
// (§4.4): it owns the prepared-voice table and the sample buffer table,
// assigns parameters before trigger, and submits triggers to the
// Playhead via the lock-free queue's producer side.
package controls

import (
	"errors"
	"sync"

	"github.com/drunkcoder/ruffbox-go/internal/effects"
	"github.com/drunkcoder/ruffbox-go/internal/params"
	"github.com/drunkcoder/ruffbox-go/internal/queue"
	"github.com/drunkcoder/ruffbox-go/internal/voice"
)

// ErrUnknownVoiceID is returned by SetInstanceParameter when the given
// VoiceID was never prepared, and by Trigger when it was never prepared
// or was already triggered and consumed (§7 UnknownVoiceId).
var ErrUnknownVoiceID = errors.New("controls: unknown voice id")

// VoiceID is an opaque, monotonically increasing handle to a prepared
// voice instance (§3).
type VoiceID int64

// BufferID is an opaque handle to a loaded, shared sample buffer.
type BufferID int64

// Controls is the control-thread API: load_sample, prepare_instance,
// set_instance_parameter, set_master_parameter, trigger.
type Controls struct {
	mu sync.Mutex

	sampleRate float64
	queueTx    *queue.Queue

	nextVoiceID  VoiceID
	nextBufferID BufferID
	prepared     map[VoiceID]*preparedVoice
	triggered    map[VoiceID]struct{}
	buffers      map[BufferID]*voice.SampleBuffer

	masterReverb *effects.Reverb
	masterDelay  *effects.Delay
}

type preparedVoice struct {
	voice voice.Voice
}

// New creates a Controls instance submitting triggers onto q.
func New(sampleRate float64, q *queue.Queue, opts ...Option) *Controls {
	c := &Controls{
		sampleRate: sampleRate,
		queueTx:    q,
		prepared:   make(map[VoiceID]*preparedVoice),
		triggered:  make(map[VoiceID]struct{}),
		buffers:    make(map[BufferID]*voice.SampleBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadSample copies samples into a new shared, guard-padded SampleBuffer
// and returns a handle to it.
func (c *Controls) LoadSample(samples []float32, sampleRate float64) BufferID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextBufferID
	c.nextBufferID++
	c.buffers[id] = voice.NewSampleBuffer(samples, sampleRate)
	return id
}

// PrepareInstance creates a new voice of the given variant, bound to
// bufferID's sample buffer if sourceType is Sampler, and returns a
// handle for parameter assignment and trigger. bufferID is ignored for
// non-Sampler source types.
func (c *Controls) PrepareInstance(sourceType params.SourceType, bufferID BufferID) VoiceID {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf *voice.SampleBuffer
	if sourceType == params.Sampler {
		buf = c.buffers[bufferID]
	}

	id := c.nextVoiceID
	c.nextVoiceID++
	c.prepared[id] = &preparedVoice{voice: voice.New(sourceType, c.sampleRate, buf)}
	return id
}

// SetInstanceParameter assigns a parameter value on a prepared (not yet
// triggered) voice. A call against an id that was prepared and has since
// been triggered is a no-op, not an error (§5/§9): the voice already
// handed off to the RT path and can no longer be mutated from here. Only
// an id that was never prepared at all is ErrUnknownVoiceID.
func (c *Controls) SetInstanceParameter(id VoiceID, param params.ID, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	pv, ok := c.prepared[id]
	if !ok {
		if _, wasTriggered := c.triggered[id]; wasTriggered {
			return nil
		}
		return ErrUnknownVoiceID
	}
	pv.voice.SetParameter(param, value)
	return nil
}

// Trigger submits the prepared voice to the Playhead's queue with the
// given dispatch timestamp, and removes it from the prepared table. The
// queue push is non-blocking; ErrQueueFull surfaces to the caller
// without blocking the control thread (§4.4, §7 QueueFull).
func (c *Controls) Trigger(id VoiceID, timestampS float64) error {
	c.mu.Lock()
	pv, ok := c.prepared[id]
	if ok {
		delete(c.prepared, id)
		c.triggered[id] = struct{}{}
	}
	c.mu.Unlock()
	if !ok {
		return ErrUnknownVoiceID
	}
	return c.queueTx.Push(queue.ScheduledEvent{Timestamp: timestampS, Voice: pv.voice})
}
