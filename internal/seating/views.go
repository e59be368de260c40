package seating

import "time"

type TableView struct {
	TableID   string   `json:"table_id"`
	Capacity  int      `json:"capacity"`
	Occupied  int      `json:"occupied"`
	Remaining int      `json:"remaining"`
	PartyIDs  []string `json:"party_ids"`
}

type PartyView struct {
	PartyID   string     `json:"party_id"`
	Size      int        `json:"size"`
	Status    Status     `json:"status"`
	TableID   string     `json:"table_id,omitempty"`
	ArrivedAt *time.Time `json:"arrived_at,omitempty"`
}

func tableView(t *Table) TableView {
	partyIDs := make([]string, 0, len(t.parties))
	for _, p := range t.parties {
		partyIDs = append(partyIDs, p.id)
	}
	return TableView{
		TableID:   t.id,
		Capacity:  t.capacity,
		Occupied:  t.occupied,
		Remaining: t.remaining(),
		PartyIDs:  partyIDs,
	}
}

func partyView(p *Party, t *Table) PartyView {
	v := PartyView{
		PartyID: p.id,
		Size:    p.size,
		Status:  p.state.status(),
	}
	if t != nil {
		v.TableID = t.id
	}
	if !p.arrivedAt.IsZero() {
		at := p.arrivedAt
		v.ArrivedAt = &at
	}
	return v
}

// FloorView is a consistent snapshot of every table and the waitlist.
type FloorView struct {
	Tables        []TableView `json:"tables"`
	Waiting       []PartyView `json:"waiting"`
	Seats         int         `json:"seats"`
	OccupiedSeats int         `json:"occupied_seats"`
	SeatedParties int         `json:"seated_parties"`
}
