package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appfloor "restaurant-seating/internal/app/floor"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type PartyHandlers struct {
	svc *appfloor.Service
}

func NewPartyHandlers(svc *appfloor.Service) *PartyHandlers {
	return &PartyHandlers{svc: svc}
}

func (h *PartyHandlers) Arrive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricArriveRequestsTotal.Add(1)
		var req appfloor.ArriveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			metricArriveErrorsTotal.Add(1)
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		view, err := h.svc.Arrive(r.Context(), req.Size)
		if err != nil {
			metricArriveErrorsTotal.Add(1)
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, view)
	}
}

func (h *PartyHandlers) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := h.svc.Party(chi.URLParam(r, "party_id"))
		if err != nil {
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func (h *PartyHandlers) Table() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.svc.Lookup(chi.URLParam(r, "party_id")))
	}
}

func (h *PartyHandlers) Leave() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricLeaveRequestsTotal.Add(1)
		resp, err := h.svc.Leave(r.Context(), chi.URLParam(r, "party_id"))
		if err != nil {
			writeFloorError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func writeFloorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appfloor.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, appfloor.ErrPartyTooLarge):
		WriteHTTPError(w, http.StatusUnprocessableEntity, "party_too_large")
	case errors.Is(err, appfloor.ErrPartyNotFound):
		WriteHTTPError(w, http.StatusNotFound, "party_not_found")
	case errors.Is(err, appfloor.ErrTableNotFound):
		WriteHTTPError(w, http.StatusNotFound, "table_not_found")
	case errors.Is(err, appfloor.ErrEventNotFound):
		WriteHTTPError(w, http.StatusNotFound, "event_not_found")
	case errors.Is(err, appfloor.ErrJournalDisabled):
		WriteHTTPError(w, http.StatusNotFound, "journal_disabled")
	default:
		log.Error().Err(err).Msg("floor request failed")
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
