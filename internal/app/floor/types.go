package floor

import (
	"restaurant-seating/internal/seating"
	"restaurant-seating/internal/store"
)

type ArriveRequest struct {
	Size int `json:"size"`
}

type LookupResponse struct {
	PartyID string  `json:"party_id"`
	TableID *string `json:"table_id"`
}

type LeaveResponse struct {
	OK      bool   `json:"ok"`
	PartyID string `json:"party_id"`
}

type TablesResponse struct {
	Items []seating.TableView `json:"items"`
}

type WaitlistResponse struct {
	Size  int                 `json:"size"`
	Items []seating.PartyView `json:"items"`
}

type SummaryResponse struct {
	Tables        int `json:"tables"`
	Seats         int `json:"seats"`
	OccupiedSeats int `json:"occupied_seats"`
	FreeSeats     int `json:"free_seats"`
	SeatedParties int `json:"seated_parties"`
	QueueSize     int `json:"queue_size"`
	MaxPartySize  int `json:"max_party_size,omitempty"`
}

type JournalResponse struct {
	Items   []store.SeatingEvent `json:"items"`
	NextID  string               `json:"next_id,omitempty"`
	HasMore bool                 `json:"has_more"`
}

type JournalStatsResponse struct {
	Total  int64            `json:"total"`
	ByType map[string]int64 `json:"by_type"`
}
