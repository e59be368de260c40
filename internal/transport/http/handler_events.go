package httptransport

import (
	"net/http"
	"time"

	"restaurant-seating/internal/stream"
)

var ssePingInterval = 15 * time.Second

// EventsSSEHandler streams seating events. Clients reconnecting with
// Last-Event-ID receive the buffered events they missed first.
func EventsSSEHandler(feed *stream.Feed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			WriteHTTPError(w, http.StatusInternalServerError, "stream_not_supported")
			return
		}
		stream.SetSSEHeaders(w)

		lastEventID := r.Header.Get("Last-Event-ID")
		if lastEventID == "" {
			lastEventID = r.URL.Query().Get("last_event_id")
		}
		replay, ch := feed.ReplayAndSubscribe(lastEventID)
		defer feed.Unsubscribe(ch)
		metricSSEConnectionsTotal.Add(1)
		metricSSEConnectionsActive.Add(1)
		defer metricSSEConnectionsActive.Add(-1)

		for _, ev := range replay {
			if err := stream.WriteSSE(w, ev); err != nil {
				return
			}
		}
		flusher.Flush()

		ticker := time.NewTicker(ssePingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-r.Context().Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				if err := stream.WriteSSE(w, ev); err != nil {
					return
				}
				flusher.Flush()
			case <-ticker.C:
				ping := stream.StreamEvent{
					Event:    "ping",
					ServerTS: time.Now().UnixMilli(),
					Data:     map[string]any{"ts": time.Now().UnixMilli()},
				}
				if err := stream.WriteSSE(w, ping); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
