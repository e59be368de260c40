package eventpush

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

var errCircuitOpen = errors.New("circuit_open")

func (d *Dispatcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.done:
			return
		case job := <-d.dispatchCh:
			metricPushQueueLen.Set(int64(len(d.dispatchCh)))
			d.processJob(ctx, job)
		}
	}
}

func (d *Dispatcher) processJob(ctx context.Context, job pushJob) {
	sink := d.sinks[job.Sink]
	if sink == nil {
		metricPushDroppedTotal.Add(1)
		return
	}

	if err := d.beforeSend(job.Sink, time.Now()); err != nil {
		metricPushCircuitOpenTotal.Add(1)
		d.retryOrDrop(job, err)
		return
	}

	if err := sink.Send(ctx, job.Event); err != nil {
		metricPushFailedTotal.Add(1)
		d.afterFailure(job.Sink, time.Now())
		d.retryOrDrop(job, err)
		return
	}

	metricPushSentTotal.Add(1)
	d.afterSuccess(job.Sink)
}

func (d *Dispatcher) retryOrDrop(job pushJob, err error) bool {
	if job.Attempt >= d.cfg.RetryMax {
		metricPushRetryDroppedTotal.Add(1)
		log.Error().Err(err).Str("sink", job.Sink).Str("event_id", job.Event.ID).Int("attempt", job.Attempt).Msg("event push dropped")
		return false
	}
	job.Attempt++
	metricPushRetryTotal.Add(1)
	delay := d.cfg.RetryBase * time.Duration(1<<(job.Attempt-1))
	log.Warn().Err(err).Str("sink", job.Sink).Str("event_id", job.Event.ID).Int("attempt", job.Attempt).Dur("delay", delay).Msg("event push retry scheduled")
	d.retryQ.Enqueue(job, delay)
	return true
}

func (d *Dispatcher) beforeSend(sink string, now time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	state := d.breakerBySink[sink]
	if !state.openUntil.IsZero() && now.Before(state.openUntil) {
		return errCircuitOpen
	}
	return nil
}

func (d *Dispatcher) afterFailure(sink string, now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	state := d.breakerBySink[sink]
	state.consecutiveFailures++
	if state.consecutiveFailures >= d.cfg.FailureThreshold {
		state.openUntil = now.Add(d.cfg.CircuitOpenDuration)
		state.consecutiveFailures = 0
		log.Warn().Str("sink", sink).Time("open_until", state.openUntil).Msg("event push circuit opened")
	}
	d.breakerBySink[sink] = state
}

func (d *Dispatcher) afterSuccess(sink string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.breakerBySink[sink] = breakerState{}
}
