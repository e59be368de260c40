package seating

import (
	"fmt"
	"slices"
	"sort"

	"restaurant-seating/internal/ids"
)

// Table is a fixed-capacity seating resource. Occupancy is only mutated by the
// pool under the Manager's lock; callers read it through TableView.
type Table struct {
	id       string
	capacity int
	occupied int
	parties  []*Party
}

func (t *Table) ID() string { return t.id }

func (t *Table) Capacity() int { return t.capacity }

func (t *Table) remaining() int { return t.capacity - t.occupied }

func (t *Table) String() string {
	return fmt.Sprintf("Table(id=%s, size=%d)", t.id, t.capacity)
}

type tablePool struct {
	tables     []*Table
	byID       map[string]*Table
	byCapacity map[int][]*Table
	capacities []int
}

func newTablePool(capacities []int) (*tablePool, error) {
	if len(capacities) == 0 {
		return nil, ErrNoTables
	}
	p := &tablePool{
		tables:     make([]*Table, 0, len(capacities)),
		byID:       make(map[string]*Table, len(capacities)),
		byCapacity: map[int][]*Table{},
	}
	for _, c := range capacities {
		if c < 1 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, c)
		}
		t := &Table{id: ids.New(), capacity: c}
		p.tables = append(p.tables, t)
		p.byID[t.id] = t
		if _, ok := p.byCapacity[c]; !ok {
			p.capacities = append(p.capacities, c)
		}
		p.byCapacity[c] = append(p.byCapacity[c], t)
	}
	slices.Sort(p.capacities)
	return p, nil
}

func (p *tablePool) maxCapacity() int {
	return p.capacities[len(p.capacities)-1]
}

// findSeat prefers an empty table of exactly the party's size, then the
// smallest empty larger table, and shares a partly occupied table only when
// no empty table fits.
func (p *tablePool) findSeat(size int) *Table {
	if size < 1 {
		return nil
	}
	for _, t := range p.byCapacity[size] {
		if t.occupied == 0 {
			return t
		}
	}
	larger := p.capacities[sort.SearchInts(p.capacities, size+1):]
	for _, c := range larger {
		for _, t := range p.byCapacity[c] {
			if t.occupied == 0 {
				return t
			}
		}
	}
	fitting := p.capacities[sort.SearchInts(p.capacities, size):]
	for _, c := range fitting {
		for _, t := range p.byCapacity[c] {
			if t.remaining() >= size {
				return t
			}
		}
	}
	return nil
}

func (p *tablePool) seat(t *Table, party *Party) error {
	if t.occupied+party.size > t.capacity {
		return fmt.Errorf("%w: seat %d on %s with %d/%d occupied",
			ErrInvariantViolation, party.size, t.id, t.occupied, t.capacity)
	}
	t.occupied += party.size
	t.parties = append(t.parties, party)
	return nil
}

func (p *tablePool) vacate(t *Table, party *Party) error {
	idx := slices.Index(t.parties, party)
	if idx < 0 || t.occupied-party.size < 0 {
		return fmt.Errorf("%w: vacate %d from %s with %d/%d occupied",
			ErrInvariantViolation, party.size, t.id, t.occupied, t.capacity)
	}
	t.occupied -= party.size
	t.parties = slices.Delete(t.parties, idx, idx+1)
	return nil
}

func (p *tablePool) remainingCapacity(t *Table) int {
	return t.remaining()
}
