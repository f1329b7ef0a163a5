package runner

import (
	"context"
	"time"

	"github.com/samdwyer/mun/internal/input"
)

// DefaultTick is the input polling interval.
const DefaultTick = 100 * time.Millisecond

// EventKind tags an Event.
type EventKind int

const (
	EventInput EventKind = iota
	EventTick
)

// Event is one item on the loop's queue. Key is set for EventInput only.
type Event struct {
	Kind EventKind
	Key  input.Key
}

// KeySource yields terminal key presses.
type KeySource interface {
	// PollKey waits up to timeout for a key press.
	PollKey(ctx context.Context, timeout time.Duration) (input.Key, bool)
}

// Produce polls src every tick and sends each key, or a Tick when none
// arrived, to out in order. It returns nil once ctx is cancelled.
func Produce(ctx context.Context, src KeySource, out chan<- Event, tick time.Duration) error {
	if tick <= 0 {
		tick = DefaultTick
	}
	for {
		ev := Event{Kind: EventTick}
		if key, ok := src.PollKey(ctx, tick); ok {
			ev = Event{Kind: EventInput, Key: key}
		}
		if ctx.Err() != nil {
			return nil
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}
