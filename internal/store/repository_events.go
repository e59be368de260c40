package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"restaurant-seating/internal/seating"

	"github.com/jackc/pgx/v5"
)

const seatingEventColumns = `id, event_type, party_id, party_size, table_id, queue_size, occurred_at, payload, created_at`

// RecordSeatingEvent appends ev to the journal. Re-recording the same event id
// is a no-op so retried deliveries stay idempotent.
func (s *Store) RecordSeatingEvent(ctx context.Context, ev seating.Event) error {
	if ev.ID == "" {
		return fmt.Errorf("record seating event: empty event id")
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = s.Pool.Exec(ctx, `
INSERT INTO seating_events (id, event_type, party_id, party_size, table_id, queue_size, occurred_at, payload)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO NOTHING`,
		ev.ID, string(ev.Type), ev.PartyID, ev.PartySize, nullIfEmpty(ev.TableID), ev.QueueSize, ev.At, payload)
	return err
}

func (s *Store) GetSeatingEvent(ctx context.Context, id string) (SeatingEvent, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+seatingEventColumns+` FROM seating_events WHERE id = $1`, id)
	ev, err := scanSeatingEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return SeatingEvent{}, ErrNotFound
	}
	return ev, err
}

// ListSeatingEvents pages through the journal in event id order.
func (s *Store) ListSeatingEvents(ctx context.Context, f JournalFilter) ([]SeatingEvent, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if f.Limit > 1000 {
		f.Limit = 1000
	}
	var (
		where []string
		args  []any
	)
	if f.PartyID != "" {
		args = append(args, f.PartyID)
		where = append(where, fmt.Sprintf("party_id = $%d", len(args)))
	}
	if f.EventType != "" {
		args = append(args, f.EventType)
		where = append(where, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if f.AfterID != "" {
		args = append(args, f.AfterID)
		where = append(where, fmt.Sprintf("id > $%d", len(args)))
	}
	query := `SELECT ` + seatingEventColumns + ` FROM seating_events`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(` ORDER BY id ASC LIMIT $%d`, len(args))

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SeatingEvent{}
	for rows.Next() {
		ev, err := scanSeatingEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// CountSeatingEventsByType summarizes the journal per event type.
func (s *Store) CountSeatingEventsByType(ctx context.Context) (map[string]int64, error) {
	rows, err := s.Pool.Query(ctx, `SELECT event_type, COUNT(*) FROM seating_events GROUP BY event_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var typ string
		var n int64
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		out[typ] = n
	}
	return out, rows.Err()
}

func scanSeatingEvent(row pgx.Row) (SeatingEvent, error) {
	var ev SeatingEvent
	var tableID *string
	err := row.Scan(&ev.ID, &ev.EventType, &ev.PartyID, &ev.PartySize, &tableID, &ev.QueueSize, &ev.OccurredAt, &ev.Payload, &ev.CreatedAt)
	if err != nil {
		return SeatingEvent{}, err
	}
	if tableID != nil {
		ev.TableID = *tableID
	}
	return ev, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
