package stream

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-seating/internal/seating"
)

func TestFeedOrderAndReplay(t *testing.T) {
	feed := NewFeed(10)
	ev1 := feed.Append("party_seated", "p1", map[string]any{"n": 1})
	ev2 := feed.Append("party_waitlisted", "p2", map[string]any{"n": 2})
	ev3 := feed.Append("party_left", "p1", map[string]any{"n": 3})

	if ev1.EventID != "1" || ev2.EventID != "2" || ev3.EventID != "3" {
		t.Fatalf("unexpected event ids: %s %s %s", ev1.EventID, ev2.EventID, ev3.EventID)
	}

	replay := feed.ReplayAfter("1")
	if len(replay) != 2 {
		t.Fatalf("expected 2 replay events, got %d", len(replay))
	}
	if replay[0].EventID != "2" || replay[1].EventID != "3" {
		t.Fatalf("unexpected replay order: %+v", replay)
	}
	if all := feed.ReplayAfter("garbage"); len(all) != 3 {
		t.Fatalf("malformed id should replay all, got %d", len(all))
	}
}

func TestFeedTrimsToMax(t *testing.T) {
	feed := NewFeed(2)
	feed.Append("a", "", nil)
	feed.Append("b", "", nil)
	feed.Append("c", "", nil)

	replay := feed.ReplayAfter("")
	if len(replay) != 2 || replay[0].Event != "b" || replay[1].Event != "c" {
		t.Fatalf("unexpected buffer after trim: %+v", replay)
	}
}

func TestFeedObserverAndSubscribe(t *testing.T) {
	feed := NewFeed(10)
	feed.Append("party_seated", "p0", nil)

	replay, ch := feed.ReplayAndSubscribe("")
	defer feed.Unsubscribe(ch)
	if len(replay) != 1 {
		t.Fatalf("expected 1 replayed event, got %d", len(replay))
	}
	if feed.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", feed.Subscribers())
	}

	var obs seating.Observer = feed
	obs.OnSeatingEvent(seating.Event{Type: seating.EventPromoted, PartyID: "p9", PartySize: 3, TableID: "t1"})

	select {
	case ev := <-ch:
		if ev.Event != string(seating.EventPromoted) || ev.PartyID != "p9" || ev.EventID != "2" {
			t.Fatalf("unexpected live event: %+v", ev)
		}
		data, ok := ev.Data.(seating.Event)
		if !ok || data.TableID != "t1" {
			t.Fatalf("unexpected event data: %#v", ev.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for live event")
	}
}

func TestFeedCloseClosesSubscribers(t *testing.T) {
	feed := NewFeed(10)
	ch := feed.Subscribe()
	feed.Close()
	if _, ok := <-ch; ok {
		t.Fatal("expected subscriber channel to be closed")
	}
	if ev := feed.Append("a", "", nil); ev.EventID != "" {
		t.Fatalf("append after close should be ignored, got %+v", ev)
	}
	late := feed.Subscribe()
	if _, ok := <-late; ok {
		t.Fatal("subscribe after close should return a closed channel")
	}
}

func TestWriteSSE(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSSEHeaders(rec)
	if err := WriteSSE(rec, StreamEvent{EventID: "7", Event: "party_seated", PartyID: "p1"}); err != nil {
		t.Fatalf("WriteSSE() error = %v", err)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("Content-Type = %q", got)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "id: 7\nevent: party_seated\ndata: {") || !strings.HasSuffix(body, "}\n\n") {
		t.Fatalf("unexpected SSE frame: %q", body)
	}

	rec = httptest.NewRecorder()
	if err := WriteSSE(rec, StreamEvent{Event: "ping"}); err != nil {
		t.Fatalf("WriteSSE() ping error = %v", err)
	}
	if strings.Contains(rec.Body.String(), "id:") {
		t.Fatalf("ping frame should not carry an id: %q", rec.Body.String())
	}
}
