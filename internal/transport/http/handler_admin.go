package httptransport

import (
	"net/http"

	appfloor "restaurant-seating/internal/app/floor"
	"restaurant-seating/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	store *store.Store
	svc   *appfloor.Service
}

func NewAdminHandlers(st *store.Store, svc *appfloor.Service) *AdminHandlers {
	return &AdminHandlers{store: st, svc: svc}
}

// Health reports the journal as disabled when no database is configured; the
// floor itself is in memory and always up.
func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "disabled"})
			return
		}
		if err := h.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "db": "down"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Journal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricJournalQueryTotal.Add(1)
		resp, err := h.svc.Journal(r.Context(), journalFilterFromQuery(r))
		if err != nil {
			metricJournalQueryErrors.Add(1)
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AdminHandlers) JournalStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricJournalQueryTotal.Add(1)
		resp, err := h.svc.JournalStats(r.Context())
		if err != nil {
			metricJournalQueryErrors.Add(1)
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *AdminHandlers) JournalEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricJournalQueryTotal.Add(1)
		ev, err := h.svc.JournalEvent(r.Context(), chi.URLParam(r, "event_id"))
		if err != nil {
			metricJournalQueryErrors.Add(1)
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ev)
	}
}
