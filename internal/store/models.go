package store

import (
	"encoding/json"
	"time"
)

type SeatingEvent struct {
	ID         string          `json:"id"`
	EventType  string          `json:"event_type"`
	PartyID    string          `json:"party_id"`
	PartySize  int             `json:"party_size"`
	TableID    string          `json:"table_id,omitempty"`
	QueueSize  int             `json:"queue_size"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

type JournalFilter struct {
	PartyID   string
	EventType string
	AfterID   string
	Limit     int
}
