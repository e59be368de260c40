package floor

import (
	"context"
	"errors"
	"testing"

	"restaurant-seating/internal/seating"
	"restaurant-seating/internal/store"
)

type fakeJournal struct {
	events []store.SeatingEvent
	last   store.JournalFilter
}

func (f *fakeJournal) ListSeatingEvents(_ context.Context, filter store.JournalFilter) ([]store.SeatingEvent, error) {
	f.last = filter
	out := f.events
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeJournal) GetSeatingEvent(_ context.Context, id string) (store.SeatingEvent, error) {
	for _, ev := range f.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return store.SeatingEvent{}, store.ErrNotFound
}

func (f *fakeJournal) CountSeatingEventsByType(context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, ev := range f.events {
		out[ev.EventType]++
	}
	return out, nil
}

func newService(t *testing.T, maxParty int, capacities ...int) *Service {
	t.Helper()
	var opts []seating.Option
	if maxParty > 0 {
		opts = append(opts, seating.WithMaxPartySize(maxParty))
	}
	mgr, err := seating.NewManager(capacities, opts...)
	if err != nil {
		t.Fatalf("NewManager error = %v", err)
	}
	return NewService(mgr, nil, maxParty)
}

func TestArriveLookupLeave(t *testing.T) {
	svc := newService(t, 0, 2, 4)
	ctx := context.Background()

	first, err := svc.Arrive(ctx, 2)
	if err != nil {
		t.Fatalf("Arrive error = %v", err)
	}
	if first.Status != seating.StatusSeated || first.TableID == "" {
		t.Fatalf("first party view = %+v", first)
	}
	second, _ := svc.Arrive(ctx, 4)
	third, _ := svc.Arrive(ctx, 4)
	if third.Status != seating.StatusWaiting || third.TableID != "" {
		t.Fatalf("third party view = %+v", third)
	}

	lookup := svc.Lookup(first.PartyID)
	if lookup.TableID == nil || *lookup.TableID != first.TableID {
		t.Fatalf("Lookup(first) = %+v", lookup)
	}
	if got := svc.Lookup(third.PartyID); got.TableID != nil {
		t.Fatalf("waiting party should have no table: %+v", got)
	}
	if got := svc.Lookup("nope"); got.TableID != nil || got.PartyID != "nope" {
		t.Fatalf("unknown party lookup = %+v", got)
	}

	if _, err := svc.Leave(ctx, second.PartyID); err != nil {
		t.Fatalf("Leave error = %v", err)
	}
	promoted, err := svc.Party(third.PartyID)
	if err != nil {
		t.Fatalf("Party error = %v", err)
	}
	if promoted.Status != seating.StatusSeated || promoted.TableID != second.TableID {
		t.Fatalf("promoted view = %+v, want table %s", promoted, second.TableID)
	}
	if _, err := svc.Leave(ctx, second.PartyID); !errors.Is(err, ErrPartyNotFound) {
		t.Fatalf("second Leave error = %v, want ErrPartyNotFound", err)
	}
	if _, err := svc.Party(second.PartyID); !errors.Is(err, ErrPartyNotFound) {
		t.Fatalf("Party(departed) error = %v, want ErrPartyNotFound", err)
	}
}

func TestArriveValidation(t *testing.T) {
	svc := newService(t, 4, 2, 4)
	ctx := context.Background()

	if _, err := svc.Arrive(ctx, 0); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Arrive(0) error = %v, want ErrInvalidRequest", err)
	}
	if _, err := svc.Arrive(ctx, 5); !errors.Is(err, ErrPartyTooLarge) {
		t.Fatalf("Arrive(5) error = %v, want ErrPartyTooLarge", err)
	}
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := svc.Arrive(cancelled, 2); !errors.Is(err, context.Canceled) {
		t.Fatalf("Arrive(cancelled) error = %v", err)
	}
}

func TestWaitlistTablesSummary(t *testing.T) {
	svc := newService(t, 0, 2, 4)
	ctx := context.Background()
	for _, size := range []int{2, 4, 3, 1} {
		if _, err := svc.Arrive(ctx, size); err != nil {
			t.Fatalf("Arrive(%d) error = %v", size, err)
		}
	}

	wl := svc.Waitlist()
	if wl.Size != 2 || wl.Items[0].Size != 3 || wl.Items[1].Size != 1 {
		t.Fatalf("waitlist = %+v", wl)
	}
	tables := svc.Tables()
	if len(tables.Items) != 2 {
		t.Fatalf("tables = %+v", tables)
	}
	if _, err := svc.Table(tables.Items[0].TableID); err != nil {
		t.Fatalf("Table error = %v", err)
	}
	if _, err := svc.Table("missing"); !errors.Is(err, ErrTableNotFound) {
		t.Fatalf("Table(missing) error = %v", err)
	}

	sum := svc.Summary()
	want := SummaryResponse{Tables: 2, Seats: 6, OccupiedSeats: 6, FreeSeats: 0, SeatedParties: 2, QueueSize: 2}
	if *sum != want {
		t.Fatalf("summary = %+v, want %+v", *sum, want)
	}
}

func TestJournalPaging(t *testing.T) {
	mgr, _ := seating.NewManager([]int{2})
	journal := &fakeJournal{events: []store.SeatingEvent{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	svc := NewService(mgr, journal, 0)

	page, err := svc.Journal(context.Background(), store.JournalFilter{Limit: 2, PartyID: "p1"})
	if err != nil {
		t.Fatalf("Journal error = %v", err)
	}
	if len(page.Items) != 2 || !page.HasMore || page.NextID != "b" {
		t.Fatalf("journal page = %+v", page)
	}
	if journal.last.Limit != 3 || journal.last.PartyID != "p1" {
		t.Fatalf("journal filter = %+v", journal.last)
	}

	disabled := NewService(mgr, nil, 0)
	if _, err := disabled.Journal(context.Background(), store.JournalFilter{}); !errors.Is(err, ErrJournalDisabled) {
		t.Fatalf("Journal without store error = %v", err)
	}
}

func TestJournalLimitClamp(t *testing.T) {
	mgr, _ := seating.NewManager([]int{2})
	journal := &fakeJournal{}
	svc := NewService(mgr, journal, 0)

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 0, want: 101},
		{limit: -4, want: 101},
		{limit: 20, want: 21},
		{limit: 500, want: 501},
		{limit: 600, want: 501},
	}
	for _, tt := range tests {
		if _, err := svc.Journal(context.Background(), store.JournalFilter{Limit: tt.limit}); err != nil {
			t.Fatalf("Journal(limit=%d) error = %v", tt.limit, err)
		}
		if journal.last.Limit != tt.want {
			t.Fatalf("Journal(limit=%d) fetched %d, want %d", tt.limit, journal.last.Limit, tt.want)
		}
	}
}

func TestJournalEventAndStats(t *testing.T) {
	mgr, _ := seating.NewManager([]int{2})
	journal := &fakeJournal{events: []store.SeatingEvent{
		{ID: "a", EventType: "party_seated"},
		{ID: "b", EventType: "party_waitlisted"},
		{ID: "c", EventType: "party_seated"},
	}}
	svc := NewService(mgr, journal, 0)
	ctx := context.Background()

	ev, err := svc.JournalEvent(ctx, "b")
	if err != nil || ev.EventType != "party_waitlisted" {
		t.Fatalf("JournalEvent(b) = %+v, %v", ev, err)
	}
	if _, err := svc.JournalEvent(ctx, "zzz"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("JournalEvent(missing) error = %v", err)
	}
	if _, err := svc.JournalEvent(ctx, ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("JournalEvent(empty) error = %v", err)
	}

	stats, err := svc.JournalStats(ctx)
	if err != nil {
		t.Fatalf("JournalStats error = %v", err)
	}
	if stats.Total != 3 || stats.ByType["party_seated"] != 2 || stats.ByType["party_waitlisted"] != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	disabled := NewService(mgr, nil, 0)
	if _, err := disabled.JournalStats(ctx); !errors.Is(err, ErrJournalDisabled) {
		t.Fatalf("JournalStats without store error = %v", err)
	}
	if _, err := disabled.JournalEvent(ctx, "a"); !errors.Is(err, ErrJournalDisabled) {
		t.Fatalf("JournalEvent without store error = %v", err)
	}
}
