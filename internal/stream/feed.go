package stream

import (
	"expvar"
	"strconv"
	"sync"
	"time"

	"restaurant-seating/internal/seating"
)

var metricDroppedEvents = expvar.NewInt("stream_dropped_events_total")

type StreamEvent struct {
	EventID  string `json:"event_id"`
	Event    string `json:"event"`
	PartyID  string `json:"party_id,omitempty"`
	ServerTS int64  `json:"server_ts"`
	Data     any    `json:"data"`
}

// Feed keeps the most recent seating events for replay and fans new ones out
// to live subscribers. Subscribers that fall behind lose events rather than
// stall the seating manager.
type Feed struct {
	mu       sync.Mutex
	nextID   int64
	max      int
	events   []StreamEvent
	watchers map[chan StreamEvent]struct{}
	closed   bool
}

func NewFeed(max int) *Feed {
	if max <= 0 {
		max = 500
	}
	return &Feed{
		max:      max,
		watchers: map[chan StreamEvent]struct{}{},
	}
}

// OnSeatingEvent lets a Feed be installed as a seating.Observer.
func (f *Feed) OnSeatingEvent(ev seating.Event) {
	f.Append(string(ev.Type), ev.PartyID, ev)
}

func (f *Feed) Append(event, partyID string, data any) StreamEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return StreamEvent{}
	}
	f.nextID++
	ev := StreamEvent{
		EventID:  strconv.FormatInt(f.nextID, 10),
		Event:    event,
		PartyID:  partyID,
		ServerTS: time.Now().UnixMilli(),
		Data:     data,
	}
	f.events = append(f.events, ev)
	if len(f.events) > f.max {
		f.events = f.events[len(f.events)-f.max:]
	}
	for ch := range f.watchers {
		select {
		case ch <- ev:
		default:
			metricDroppedEvents.Add(1)
		}
	}
	return ev
}

// ReplayAfter returns buffered events newer than lastEventID. An empty or
// malformed id replays the whole buffer.
func (f *Feed) ReplayAfter(lastEventID string) []StreamEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replayLocked(lastEventID)
}

// ReplayAndSubscribe snapshots the buffer and registers a subscriber under one
// lock so no event falls between the replay and the live stream.
func (f *Feed) ReplayAndSubscribe(lastEventID string) ([]StreamEvent, chan StreamEvent) {
	ch := make(chan StreamEvent, 32)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		close(ch)
		return nil, ch
	}
	f.watchers[ch] = struct{}{}
	return f.replayLocked(lastEventID), ch
}

func (f *Feed) replayLocked(lastEventID string) []StreamEvent {
	if len(f.events) == 0 {
		return nil
	}
	last, err := strconv.ParseInt(lastEventID, 10, 64)
	if lastEventID == "" || err != nil {
		out := make([]StreamEvent, len(f.events))
		copy(out, f.events)
		return out
	}
	out := make([]StreamEvent, 0, len(f.events))
	for _, ev := range f.events {
		id, _ := strconv.ParseInt(ev.EventID, 10, 64)
		if id > last {
			out = append(out, ev)
		}
	}
	return out
}

func (f *Feed) Subscribe() chan StreamEvent {
	ch := make(chan StreamEvent, 32)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		close(ch)
		return ch
	}
	f.watchers[ch] = struct{}{}
	return ch
}

func (f *Feed) Unsubscribe(ch chan StreamEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.watchers[ch]; ok {
		delete(f.watchers, ch)
		close(ch)
	}
}

func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watchers)
}

func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for ch := range f.watchers {
		close(ch)
		delete(f.watchers, ch)
	}
}
