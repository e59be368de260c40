package floor

import (
	"context"
	"errors"
	"fmt"

	"restaurant-seating/internal/seating"
	"restaurant-seating/internal/store"
)

const (
	defaultJournalLimit = 100
	maxJournalLimit     = 500
)

// Journal is the read side of the seating event journal.
type Journal interface {
	ListSeatingEvents(ctx context.Context, f store.JournalFilter) ([]store.SeatingEvent, error)
	GetSeatingEvent(ctx context.Context, id string) (store.SeatingEvent, error)
	CountSeatingEventsByType(ctx context.Context) (map[string]int64, error)
}

type Service struct {
	mgr          *seating.Manager
	journal      Journal
	maxPartySize int
}

func NewService(mgr *seating.Manager, journal Journal, maxPartySize int) *Service {
	return &Service{mgr: mgr, journal: journal, maxPartySize: maxPartySize}
}

func (s *Service) Arrive(ctx context.Context, size int) (*seating.PartyView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := seating.NewParty(size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if _, err := s.mgr.Arrive(p); err != nil {
		if errors.Is(err, seating.ErrPartyTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrPartyTooLarge, err)
		}
		return nil, err
	}
	view := s.mgr.View(p)
	return &view, nil
}

// Leave removes a seated or waiting party. Ids that are unknown or already
// gone report ErrPartyNotFound.
func (s *Service) Leave(ctx context.Context, partyID string) (*LeaveResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := s.mgr.Party(partyID)
	if !ok {
		return nil, ErrPartyNotFound
	}
	if err := s.mgr.Leave(p); err != nil {
		return nil, err
	}
	return &LeaveResponse{OK: true, PartyID: partyID}, nil
}

// Lookup reports the table a party sits at. Waiting, departed and unknown
// parties all resolve to a nil table id.
func (s *Service) Lookup(partyID string) *LookupResponse {
	out := &LookupResponse{PartyID: partyID}
	p, ok := s.mgr.Party(partyID)
	if !ok {
		return out
	}
	if t, seated := s.mgr.Lookup(p); seated {
		id := t.ID()
		out.TableID = &id
	}
	return out
}

func (s *Service) Party(partyID string) (*seating.PartyView, error) {
	p, ok := s.mgr.Party(partyID)
	if !ok {
		return nil, ErrPartyNotFound
	}
	view := s.mgr.View(p)
	return &view, nil
}

func (s *Service) Table(tableID string) (*seating.TableView, error) {
	v, ok := s.mgr.Table(tableID)
	if !ok {
		return nil, ErrTableNotFound
	}
	return &v, nil
}

func (s *Service) Tables() *TablesResponse {
	return &TablesResponse{Items: s.mgr.Tables()}
}

func (s *Service) Waitlist() *WaitlistResponse {
	items := s.mgr.Waiting()
	return &WaitlistResponse{Size: len(items), Items: items}
}

func (s *Service) Summary() *SummaryResponse {
	fv := s.mgr.Floor()
	return &SummaryResponse{
		Tables:        len(fv.Tables),
		Seats:         fv.Seats,
		OccupiedSeats: fv.OccupiedSeats,
		FreeSeats:     fv.Seats - fv.OccupiedSeats,
		SeatedParties: fv.SeatedParties,
		QueueSize:     len(fv.Waiting),
		MaxPartySize:  s.maxPartySize,
	}
}

func (s *Service) Journal(ctx context.Context, f store.JournalFilter) (*JournalResponse, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	limit = min(limit, maxJournalLimit)
	f.Limit = limit + 1
	items, err := s.journal.ListSeatingEvents(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &JournalResponse{Items: items}
	if len(items) > limit {
		out.Items = items[:limit]
		out.HasMore = true
	}
	if n := len(out.Items); n > 0 {
		out.NextID = out.Items[n-1].ID
	}
	return out, nil
}

func (s *Service) JournalEvent(ctx context.Context, id string) (*store.SeatingEvent, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	if id == "" {
		return nil, ErrInvalidRequest
	}
	ev, err := s.journal.GetSeatingEvent(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// JournalStats counts journaled events per event type.
func (s *Service) JournalStats(ctx context.Context) (*JournalStatsResponse, error) {
	if s.journal == nil {
		return nil, ErrJournalDisabled
	}
	counts, err := s.journal.CountSeatingEventsByType(ctx)
	if err != nil {
		return nil, err
	}
	out := &JournalStatsResponse{ByType: counts}
	for _, n := range counts {
		out.Total += n
	}
	return out, nil
}
