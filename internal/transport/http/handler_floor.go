package httptransport

import (
	"net/http"

	appfloor "restaurant-seating/internal/app/floor"

	"github.com/go-chi/chi/v5"
)

type FloorHandlers struct {
	svc *appfloor.Service
}

func NewFloorHandlers(svc *appfloor.Service) *FloorHandlers {
	return &FloorHandlers{svc: svc}
}

func (h *FloorHandlers) Tables() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.svc.Tables())
	}
}

func (h *FloorHandlers) Table() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.svc.Table(chi.URLParam(r, "table_id"))
		if err != nil {
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (h *FloorHandlers) Waitlist() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.svc.Waitlist())
	}
}

func (h *FloorHandlers) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, h.svc.Summary())
	}
}
