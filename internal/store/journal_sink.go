package store

import (
	"context"

	"restaurant-seating/internal/seating"
)

// JournalSink adapts the store to the event push pipeline.
type JournalSink struct {
	st *Store
}

func NewJournalSink(st *Store) *JournalSink {
	return &JournalSink{st: st}
}

func (j *JournalSink) Name() string { return "journal" }

func (j *JournalSink) Send(ctx context.Context, ev seating.Event) error {
	return j.st.RecordSeatingEvent(ctx, ev)
}
