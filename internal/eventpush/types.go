package eventpush

import (
	"context"
	"time"

	"restaurant-seating/internal/seating"
)

// Sink delivers one seating event to a downstream system. Send must be safe
// for concurrent use; a returned error schedules a retry.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev seating.Event) error
}

type Config struct {
	Workers             int
	RetryMax            int
	RetryBase           time.Duration
	FailureThreshold    int
	CircuitOpenDuration time.Duration
	DispatchBuffer      int
	// Events limits delivery to the listed event types. Empty means all.
	Events []seating.EventType
}

type pushJob struct {
	Sink    string
	Event   seating.Event
	Attempt int
}
