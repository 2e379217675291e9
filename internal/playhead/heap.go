package playhead

import "github.com/drunkcoder/ruffbox-go/internal/queue"

// pendingHeap is a binary min-heap of ScheduledEvent ordered by
// ascending timestamp (§4.3 "pending: binary heap ordered by timestamp
// ascending"), implemented directly over a slice of values rather than
// via container/heap: heap.Interface's Push/Pop take an any, which would
// box a freshly allocated ScheduledEvent on every RT-path drain and
// dispatch (§9 forbids allocation inside Process).
type pendingHeap struct {
	items []queue.ScheduledEvent
}

func newPendingHeap(capacity int) pendingHeap {
	return pendingHeap{items: make([]queue.ScheduledEvent, 0, capacity)}
}

func (h *pendingHeap) Len() int { return len(h.items) }

// Peek returns the minimum element without removing it. Callers must
// check Len() > 0 first.
func (h *pendingHeap) Peek() queue.ScheduledEvent { return h.items[0] }

// Push inserts ev and restores the heap invariant by sifting up.
func (h *pendingHeap) Push(ev queue.ScheduledEvent) {
	h.items = append(h.items, ev)
	i := len(h.items) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if !(h.items[i].Timestamp < h.items[parent].Timestamp) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

// Pop removes and returns the minimum element, restoring the heap
// invariant by sifting down. Callers must check Len() > 0 first.
func (h *pendingHeap) Pop() queue.ScheduledEvent {
	n := len(h.items)
	min := h.items[0]
	last := h.items[n-1]
	h.items = h.items[:n-1]
	n--
	if n > 0 {
		h.items[0] = last
		i := 0
		for {
			left := 2*i + 1
			right := 2*i + 2
			smallest := i
			if left < n && h.items[left].Timestamp < h.items[smallest].Timestamp {
				smallest = left
			}
			if right < n && h.items[right].Timestamp < h.items[smallest].Timestamp {
				smallest = right
			}
			if smallest == i {
				break
			}
			h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
			i = smallest
		}
	}
	return min
}
