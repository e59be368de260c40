package eventpush

import (
	"context"
	"slices"
	"sync"
	"time"

	"restaurant-seating/internal/seating"

	"github.com/rs/zerolog/log"
)

type breakerState struct {
	consecutiveFailures int
	openUntil           time.Time
}

// Dispatcher fans seating events out to sinks on a worker pool. Enqueueing
// never blocks the seating manager: when the dispatch buffer is full the job
// is dropped and counted.
type Dispatcher struct {
	cfg   Config
	sinks map[string]Sink

	dispatchCh chan pushJob
	retryQ     *retryQueue
	done       chan struct{}

	mu            sync.Mutex
	started       bool
	breakerBySink map[string]breakerState
}

func NewDispatcher(cfg Config, sinks ...Sink) *Dispatcher {
	if cfg.DispatchBuffer <= 0 {
		cfg.DispatchBuffer = 1024
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.CircuitOpenDuration <= 0 {
		cfg.CircuitOpenDuration = 30 * time.Second
	}

	d := &Dispatcher{
		cfg:           cfg,
		sinks:         map[string]Sink{},
		dispatchCh:    make(chan pushJob, cfg.DispatchBuffer),
		done:          make(chan struct{}),
		breakerBySink: map[string]breakerState{},
	}
	for _, s := range sinks {
		if s != nil {
			d.sinks[s.Name()] = s
		}
	}
	d.retryQ = newRetryQueue(d.dispatchCh, d.done)
	return d
}

func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return nil
	}
	d.started = true
	d.mu.Unlock()

	for i := 0; i < d.cfg.Workers; i++ {
		go d.worker(ctx)
	}
	go d.retryQ.stopOnDone()
	go func() {
		<-ctx.Done()
		close(d.done)
	}()
	log.Info().Int("workers", d.cfg.Workers).Int("sinks", len(d.sinks)).Msg("event push started")
	return nil
}

// OnSeatingEvent lets a Dispatcher be installed as a seating.Observer.
func (d *Dispatcher) OnSeatingEvent(ev seating.Event) {
	if len(d.cfg.Events) > 0 && !slices.Contains(d.cfg.Events, ev.Type) {
		return
	}
	for name := range d.sinks {
		if !d.enqueue(pushJob{Sink: name, Event: ev}) {
			metricPushDroppedTotal.Add(1)
			log.Warn().Str("sink", name).Str("event_id", ev.ID).Str("event", string(ev.Type)).Msg("event push queue full")
		}
	}
}

func (d *Dispatcher) enqueue(job pushJob) bool {
	select {
	case <-d.done:
		return false
	case d.dispatchCh <- job:
		metricPushQueuedTotal.Add(1)
		metricPushQueueLen.Set(int64(len(d.dispatchCh)))
		return true
	default:
		return false
	}
}
