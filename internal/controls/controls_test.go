package controls

import (
	"testing"

	"github.com/drunkcoder/ruffbox-go/internal/params"
	"github.com/drunkcoder/ruffbox-go/internal/queue"
)

func TestPrepareSetTriggerRoundTrip(t *testing.T) {
	q := queue.New(8)
	c := New(44100, q)

	id := c.PrepareInstance(params.SineSynth, 0)
	if err := c.SetInstanceParameter(id, params.PitchFrequency, 220); err != nil {
		t.Fatal(err)
	}
	if err := c.Trigger(id, 0.5); err != nil {
		t.Fatal(err)
	}

	ev, ok := q.TryPop()
	if !ok {
		t.Fatal("expected a scheduled event on the queue")
	}
	if ev.Timestamp != 0.5 {
		t.Fatalf("expected timestamp 0.5, got %v", ev.Timestamp)
	}
}

func TestUnknownVoiceIDErrors(t *testing.T) {
	q := queue.New(8)
	c := New(44100, q)
	if err := c.SetInstanceParameter(VoiceID(999), params.Level, 1); err != ErrUnknownVoiceID {
		t.Fatalf("expected ErrUnknownVoiceID, got %v", err)
	}
	if err := c.Trigger(VoiceID(999), 0); err != ErrUnknownVoiceID {
		t.Fatalf("expected ErrUnknownVoiceID, got %v", err)
	}
}

func TestTriggerConsumesVoiceID(t *testing.T) {
	q := queue.New(8)
	c := New(44100, q)
	id := c.PrepareInstance(params.SineSynth, 0)
	if err := c.Trigger(id, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Trigger(id, 0); err != ErrUnknownVoiceID {
		t.Fatalf("expected second trigger to fail with ErrUnknownVoiceID, got %v", err)
	}
}

func TestSetParameterAfterTriggerIsNoOp(t *testing.T) {
	// §5/§9: set_instance_parameter against an id that was prepared and
	// has since been triggered is a no-op, not an error.
	q := queue.New(8)
	c := New(44100, q)
	id := c.PrepareInstance(params.SineSynth, 0)
	if err := c.Trigger(id, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.SetInstanceParameter(id, params.Level, 1); err != nil {
		t.Fatalf("expected no-op nil error after trigger, got %v", err)
	}
}

func TestQueueFullSurfacesToCaller(t *testing.T) {
	q := queue.New(2)
	c := New(44100, q)
	for i := 0; i < 3; i++ {
		id := c.PrepareInstance(params.SineSynth, 0)
		err := c.Trigger(id, 0)
		if i < 2 && err != nil {
			t.Fatalf("unexpected error on trigger %d: %v", i, err)
		}
		if i == 2 && err != queue.ErrQueueFull {
			t.Fatalf("expected ErrQueueFull on third trigger, got %v", err)
		}
	}
}

func TestLoadSampleBindsSamplerBuffer(t *testing.T) {
	q := queue.New(8)
	c := New(44100, q)
	bufID := c.LoadSample([]float32{0, 1, 0, -1}, 44100)
	id := c.PrepareInstance(params.Sampler, bufID)
	if err := c.Trigger(id, 0); err != nil {
		t.Fatal(err)
	}
	ev, ok := q.TryPop()
	if !ok {
		t.Fatal("expected event")
	}
	ev.Voice.Trigger()
	blk := ev.Voice.GetNextBlock(0)
	_ = blk // rendering without panicking confirms the buffer was bound
}

func TestSetMasterParameterIsNoOpWithoutBinding(t *testing.T) {
	q := queue.New(8)
	c := New(44100, q)
	c.SetMasterParameter(params.ReverbRoomsize, 0.9) // must not panic
}
