package seating

import "time"

type EventType string

const (
	EventSeated     EventType = "party_seated"
	EventWaitlisted EventType = "party_waitlisted"
	EventPromoted   EventType = "party_promoted"
	EventLeft       EventType = "party_left"
	EventAbandoned  EventType = "party_abandoned"
)

// Event describes one state transition of one party.
type Event struct {
	ID        string    `json:"event_id"`
	Type      EventType `json:"event"`
	PartyID   string    `json:"party_id"`
	PartySize int       `json:"party_size"`
	TableID   string    `json:"table_id,omitempty"`
	QueueSize int       `json:"queue_size"`
	At        time.Time `json:"at"`
}

// Observer receives events after the Manager has released its state lock.
// Events are delivered one at a time in the order the transitions happened.
type Observer interface {
	OnSeatingEvent(ev Event)
}

type ObserverFunc func(ev Event)

func (f ObserverFunc) OnSeatingEvent(ev Event) { f(ev) }

// Observers fans a single event out to several observers in order.
type Observers []Observer

func (o Observers) OnSeatingEvent(ev Event) {
	for _, obs := range o {
		if obs != nil {
			obs.OnSeatingEvent(ev)
		}
	}
}
