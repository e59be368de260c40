package seating

import (
	"fmt"
	"sync"
	"time"

	"restaurant-seating/internal/ids"

	"github.com/rs/zerolog/log"
)

// Manager owns the table pool, the waitlist and the seating assignment of one
// venue. Every operation runs under a single mutex so no caller observes a
// partial transition.
type Manager struct {
	mu       sync.Mutex
	pool     *tablePool
	waiting  *waitlist
	seated   map[*Party]*Table
	byID     map[string]*Party
	maxParty int

	notifyMu sync.Mutex
	observer Observer
	now      func() time.Time
}

type Option func(*Manager)

func WithObserver(obs Observer) Option {
	return func(m *Manager) { m.observer = obs }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMaxPartySize makes Arrive reject parties larger than n instead of
// leaving them on the waitlist. Zero keeps them waiting.
func WithMaxPartySize(n int) Option {
	return func(m *Manager) { m.maxParty = n }
}

func NewManager(capacities []int, opts ...Option) (*Manager, error) {
	pool, err := newTablePool(capacities)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		pool:    pool,
		waiting: newWaitlist(pool.maxCapacity()),
		seated:  map[*Party]*Table{},
		byID:    map[string]*Party{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Arrive seats the party if any table can take it and otherwise puts it on
// the waitlist. The returned table is nil when the party is waiting.
func (m *Manager) Arrive(p *Party) (*Table, error) {
	if p == nil {
		return nil, ErrNilParty
	}
	if p.size < 1 || p.id == "" {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPartySize, p.size)
	}
	m.mu.Lock()
	switch p.state {
	case partyWaiting, partySeated:
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrPartyAlreadyArrived, p.id)
	case partyDeparted:
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrPartyDeparted, p.id)
	}
	if m.maxParty > 0 && p.size > m.maxParty {
		m.mu.Unlock()
		log.Warn().Str("party_id", p.id).Int("party_size", p.size).Int("max_party_size", m.maxParty).Msg("party rejected")
		return nil, fmt.Errorf("%w: %d > %d", ErrPartyTooLarge, p.size, m.maxParty)
	}
	metricArrivalsTotal.Add(1)
	if p.arrivedAt.IsZero() {
		p.arrivedAt = m.now()
	}

	var events []Event
	t := m.pool.findSeat(p.size)
	if t != nil {
		if err := m.pool.seat(t, p); err != nil {
			m.mu.Unlock()
			m.invariantFailed(err, p)
			return nil, err
		}
		m.assignLocked(p, t)
		metricSeatedTotal.Add(1)
		events = append(events, m.eventLocked(EventSeated, p, t))
		log.Debug().Str("party_id", p.id).Int("party_size", p.size).Str("table_id", t.id).Int("table_capacity", t.capacity).Msg("party seated")
	} else {
		m.waiting.enqueue(p)
		p.state = partyWaiting
		m.byID[p.id] = p
		metricWaitlistedTotal.Add(1)
		metricQueueLen.Set(int64(m.waiting.len()))
		events = append(events, m.eventLocked(EventWaitlisted, p, nil))
		log.Debug().Str("party_id", p.id).Int("party_size", p.size).Int("queue_size", m.waiting.len()).Msg("party waitlisted")
	}
	m.notifyUnlock(events)
	return t, nil
}

// Leave removes the party from the venue. A seated party frees its seats and
// the waitlist is offered exactly those seats; a waiting party simply drops
// out. Unknown or already departed parties are ignored.
func (m *Manager) Leave(p *Party) error {
	if p == nil {
		return ErrNilParty
	}
	m.mu.Lock()
	var events []Event
	if t, ok := m.seated[p]; ok {
		if err := m.pool.vacate(t, p); err != nil {
			m.mu.Unlock()
			m.invariantFailed(err, p)
			return err
		}
		delete(m.seated, p)
		delete(m.byID, p.id)
		p.state = partyDeparted
		metricDeparturesTotal.Add(1)
		events = append(events, m.eventLocked(EventLeft, p, t))
		log.Debug().Str("party_id", p.id).Int("party_size", p.size).Str("table_id", t.id).Msg("party left")

		promoted, err := m.promoteLocked(t)
		events = append(events, promoted...)
		if err != nil {
			m.notifyUnlock(events)
			m.invariantFailed(err, p)
			return err
		}
		m.notifyUnlock(events)
		return nil
	}
	if p.state == partyWaiting && m.waiting.remove(p) {
		delete(m.byID, p.id)
		p.state = partyDeparted
		metricAbandonedTotal.Add(1)
		metricQueueLen.Set(int64(m.waiting.len()))
		events = append(events, m.eventLocked(EventAbandoned, p, nil))
		log.Debug().Str("party_id", p.id).Int("party_size", p.size).Int("queue_size", m.waiting.len()).Msg("party abandoned waitlist")
	}
	m.notifyUnlock(events)
	return nil
}

// promoteLocked fills the seats just freed on t from the waitlist, earliest
// fitting arrival first, until nothing fits or the table is full.
func (m *Manager) promoteLocked(t *Table) ([]Event, error) {
	var events []Event
	free := m.pool.remainingCapacity(t)
	for free > 0 {
		p := m.waiting.pollBestFit(free)
		if p == nil {
			break
		}
		if err := m.pool.seat(t, p); err != nil {
			m.waiting.requeue(p)
			return events, err
		}
		m.assignLocked(p, t)
		free -= p.size
		metricPromotedTotal.Add(1)
		events = append(events, m.eventLocked(EventPromoted, p, t))
		log.Debug().Str("party_id", p.id).Int("party_size", p.size).Str("table_id", t.id).Int("free_seats", free).Msg("party promoted from waitlist")
	}
	metricQueueLen.Set(int64(m.waiting.len()))
	return events, nil
}

func (m *Manager) assignLocked(p *Party, t *Table) {
	m.seated[p] = t
	m.byID[p.id] = p
	p.state = partySeated
}

// Lookup returns the table the party is seated at. It reports false both for
// waiting parties and for parties that have left.
func (m *Manager) Lookup(p *Party) (*Table, bool) {
	if p == nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.seated[p]
	return t, ok
}

func (m *Manager) QueueSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.waiting.len()
}

// Party resolves a seated or waiting party by id.
func (m *Manager) Party(id string) (*Party, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	return p, ok
}

func (m *Manager) Status(p *Party) Status {
	if p == nil {
		return StatusUnknown
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return p.state.status()
}

func (m *Manager) View(p *Party) PartyView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return partyView(p, m.seated[p])
}

func (m *Manager) Tables() []TableView {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TableView, 0, len(m.pool.tables))
	for _, t := range m.pool.tables {
		out = append(out, tableView(t))
	}
	return out
}

func (m *Manager) Table(id string) (TableView, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.pool.byID[id]
	if !ok {
		return TableView{}, false
	}
	return tableView(t), true
}

// Waiting lists waiting parties in arrival order.
func (m *Manager) Waiting() []PartyView {
	m.mu.Lock()
	defer m.mu.Unlock()
	parties := m.waiting.ordered()
	out := make([]PartyView, 0, len(parties))
	for _, p := range parties {
		out = append(out, partyView(p, nil))
	}
	return out
}

// Floor returns tables and waitlist read under one lock.
func (m *Manager) Floor() FloorView {
	m.mu.Lock()
	defer m.mu.Unlock()
	fv := FloorView{
		Tables:        make([]TableView, 0, len(m.pool.tables)),
		SeatedParties: len(m.seated),
	}
	for _, t := range m.pool.tables {
		fv.Tables = append(fv.Tables, tableView(t))
		fv.Seats += t.capacity
		fv.OccupiedSeats += t.occupied
	}
	parties := m.waiting.ordered()
	fv.Waiting = make([]PartyView, 0, len(parties))
	for _, p := range parties {
		fv.Waiting = append(fv.Waiting, partyView(p, nil))
	}
	return fv
}

func (m *Manager) eventLocked(typ EventType, p *Party, t *Table) Event {
	ev := Event{
		ID:        ids.New(),
		Type:      typ,
		PartyID:   p.id,
		PartySize: p.size,
		QueueSize: m.waiting.len(),
		At:        m.now(),
	}
	if t != nil {
		ev.TableID = t.id
	}
	return ev
}

// notifyUnlock releases the state lock and delivers events. notifyMu is taken
// before mu is released so observers see events in transition order.
func (m *Manager) notifyUnlock(events []Event) {
	if m.observer == nil || len(events) == 0 {
		m.mu.Unlock()
		return
	}
	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()
	for _, ev := range events {
		m.observer.OnSeatingEvent(ev)
	}
}

func (m *Manager) invariantFailed(err error, p *Party) {
	metricInvariantErrors.Add(1)
	log.Error().Err(err).Str("party_id", p.id).Int("party_size", p.size).Msg("seating invariant violated")
}
