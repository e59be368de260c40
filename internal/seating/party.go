package seating

import (
	"fmt"
	"time"

	"restaurant-seating/internal/ids"
)

type partyState int

const (
	partyNew partyState = iota
	partyWaiting
	partySeated
	partyDeparted
)

// Status is the externally visible lifecycle position of a party.
type Status string

const (
	StatusUnknown  Status = "unknown"
	StatusWaiting  Status = "waiting"
	StatusSeated   Status = "seated"
	StatusDeparted Status = "departed"
)

// Party is a group arriving together. Identity is the pointer: two parties of
// the same size are distinct. Size and ID never change; the remaining fields
// are owned by the Manager the party arrived at.
type Party struct {
	id   string
	size int

	state      partyState
	arrivedAt  time.Time
	arrivalSeq uint64
}

func NewParty(size int) (*Party, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPartySize, size)
	}
	return &Party{id: ids.New(), size: size}, nil
}

func (p *Party) ID() string { return p.id }

func (p *Party) Size() int { return p.size }

func (p *Party) String() string {
	return fmt.Sprintf("Party(id=%s, size=%d)", p.id, p.size)
}

func (s partyState) status() Status {
	switch s {
	case partyWaiting:
		return StatusWaiting
	case partySeated:
		return StatusSeated
	case partyDeparted:
		return StatusDeparted
	default:
		return StatusUnknown
	}
}
