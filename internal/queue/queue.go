// Package queue implements the single synchronization point between the
// control thread and the RT audio thread: a bounded, lock-free MPSC ring
// buffer of ScheduledEvent. Push is non-blocking (returns ErrQueueFull
// instead of blocking); TryPop is non-blocking and allocation-free.
package queue

import (
	"errors"
	"sync/atomic"

	"github.com/drunkcoder/ruffbox-go/internal/voice"
)

// ErrQueueFull is returned by Push when the queue has no free slot. The
// RT path MUST NOT block on a full queue; control-thread callers receive
// this error instead (§7 QueueFull).
var ErrQueueFull = errors.New("queue: full")

// ScheduledEvent pairs a prepared voice with its dispatch timestamp.
type ScheduledEvent struct {
	Timestamp float64
	Voice     voice.Voice
}

// Queue is a bounded single-consumer, multi-producer ring buffer sized
// once at construction. It never allocates after New.
type Queue struct {
	buf      []cell
	mask     uint64
	head     atomic.Uint64 // next slot producers will claim
	tail     atomic.Uint64 // next slot the single consumer will read
}

type cell struct {
	seq   atomic.Uint64
	event ScheduledEvent
}

// New creates a queue with capacity rounded up to the next power of two
// at or above capacity (minimum 2).
func New(capacity int) *Queue {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	q := &Queue{
		buf:  make([]cell, size),
		mask: uint64(size - 1),
	}
	for i := range q.buf {
		q.buf[i].seq.Store(uint64(i))
	}
	return q
}

// Push enqueues an event without blocking. Safe for concurrent callers
// (MPSC: multiple producers, one consumer). Returns ErrQueueFull if the
// ring is at capacity.
func (q *Queue) Push(ev ScheduledEvent) error {
	pos := q.head.Load()
	for {
		c := &q.buf[pos&q.mask]
		seq := c.seq.Load()
		diff := int64(seq) - int64(pos)
		switch {
		case diff == 0:
			if q.head.CompareAndSwap(pos, pos+1) {
				c.event = ev
				c.seq.Store(pos + 1)
				return nil
			}
			pos = q.head.Load()
		case diff < 0:
			return ErrQueueFull
		default:
			pos = q.head.Load()
		}
	}
}

// TryPop dequeues the next event if one is available. Safe for exactly
// one consumer (the Playhead's render call). Returns ok=false if the
// queue is empty.
func (q *Queue) TryPop() (ev ScheduledEvent, ok bool) {
	pos := q.tail.Load()
	c := &q.buf[pos&q.mask]
	seq := c.seq.Load()
	diff := int64(seq) - int64(pos+1)
	if diff != 0 {
		return ScheduledEvent{}, false
	}
	ev = c.event
	q.tail.Store(pos + 1)
	c.seq.Store(pos + q.mask + 1)
	return ev, true
}

// Cap returns the queue's fixed capacity (rounded up to a power of two).
func (q *Queue) Cap() int { return len(q.buf) }
