package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"restaurant-seating/internal/store"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteHTTPError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]any{"error": code})
}

// journalFilterFromQuery reads party_id, event, after_id and limit. A limit
// that is missing or unparsable falls back to the default; others are clamped.
func journalFilterFromQuery(r *http.Request) store.JournalFilter {
	q := r.URL.Query()
	limit := defaultJournalLimit
	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		limit = min(max(n, 1), maxJournalLimit)
	}
	return store.JournalFilter{
		PartyID:   q.Get("party_id"),
		EventType: q.Get("event"),
		AfterID:   q.Get("after_id"),
		Limit:     limit,
	}
}
