package httptransport

import (
	"net/http/httptest"
	"testing"
)

func TestJournalFilterFromQuery(t *testing.T) {
	tests := []struct {
		query     string
		wantLimit int
		wantParty string
		wantAfter string
		wantEvent string
	}{
		{query: "", wantLimit: 50},
		{query: "limit=10&party_id=p1", wantLimit: 10, wantParty: "p1"},
		{query: "limit=0", wantLimit: 1},
		{query: "limit=9999", wantLimit: 500},
		{query: "limit=abc&after_id=01X&event=party_left", wantLimit: 50, wantAfter: "01X", wantEvent: "party_left"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/journal?"+tt.query, nil)
			f := journalFilterFromQuery(r)
			if f.Limit != tt.wantLimit || f.PartyID != tt.wantParty || f.AfterID != tt.wantAfter || f.EventType != tt.wantEvent {
				t.Fatalf("journalFilterFromQuery(%q) = %+v", tt.query, f)
			}
		})
	}
}

func TestBodyCaptureTruncates(t *testing.T) {
	b := &boundedBuffer{limit: 4}
	n, err := b.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if !b.truncated || b.value() != "abcd" {
		t.Fatalf("value = %v truncated = %v", b.value(), b.truncated)
	}
	j := &boundedBuffer{limit: 64}
	_, _ = j.Write([]byte(`{"size":2}`))
	m, ok := j.value().(map[string]any)
	if !ok || m["size"] != float64(2) {
		t.Fatalf("json value = %#v", j.value())
	}
}

func TestCheckAdminAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   bool
	}{
		{name: "admin key header", header: "X-Admin-Key", value: "k", want: true},
		{name: "bearer", header: "Authorization", value: "Bearer k", want: true},
		{name: "wrong bearer", header: "Authorization", value: "Bearer x", want: false},
		{name: "basic scheme", header: "Authorization", value: "Basic k", want: false},
		{name: "none", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/journal", nil)
			if tt.header != "" {
				r.Header.Set(tt.header, tt.value)
			}
			if got := CheckAdminAuth(r, "k"); got != tt.want {
				t.Fatalf("CheckAdminAuth() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsSSERequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/events", nil)
	if !isSSERequest(r) {
		t.Fatal("/api/events should be treated as SSE")
	}
	r = httptest.NewRequest("GET", "/api/tables", nil)
	if isSSERequest(r) {
		t.Fatal("/api/tables should not be treated as SSE")
	}
	r.Header.Set("Accept", "text/event-stream")
	if !isSSERequest(r) {
		t.Fatal("Accept: text/event-stream should be treated as SSE")
	}
}
