package playhead

import (
	"math/rand"
	"testing"

	"github.com/drunkcoder/ruffbox-go/internal/queue"
)

func TestPendingHeapOrdersByTimestampAscending(t *testing.T) {
	h := newPendingHeap(8)
	stamps := []float64{5, 1, 4, 2, 3}
	for _, ts := range stamps {
		h.Push(queue.ScheduledEvent{Timestamp: ts})
	}
	var got []float64
	for h.Len() > 0 {
		got = append(got, h.Pop().Timestamp)
	}
	want := []float64{1, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestPendingHeapRandomOrderStillSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	h := newPendingHeap(64)
	const n = 50
	for i := 0; i < n; i++ {
		h.Push(queue.ScheduledEvent{Timestamp: rng.Float64() * 100})
	}
	last := -1.0
	for h.Len() > 0 {
		ev := h.Pop()
		if ev.Timestamp < last {
			t.Fatalf("heap popped out of order: %v after %v", ev.Timestamp, last)
		}
		last = ev.Timestamp
	}
}
