package stream

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// WriteSSE writes ev as one event-stream frame. The id line is omitted for
// unnumbered events such as pings so they do not move the client's cursor.
func WriteSSE(w http.ResponseWriter, ev StreamEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	var frame bytes.Buffer
	if ev.EventID != "" {
		frame.WriteString("id: " + ev.EventID + "\n")
	}
	frame.WriteString("event: " + ev.Event + "\n")
	frame.WriteString("data: ")
	frame.Write(data)
	frame.WriteString("\n\n")
	_, err = w.Write(frame.Bytes())
	return err
}

func SetSSEHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache, no-transform")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}
