package eventpush

import (
	"sync"
	"time"
)

// retryQueue re-injects failed jobs into the dispatch channel after their
// backoff. Once stopOnDone runs, timers still pending when done closes are
// stopped.
type retryQueue struct {
	out  chan<- pushJob
	done <-chan struct{}

	mu      sync.Mutex
	pending map[*time.Timer]struct{}
}

func newRetryQueue(out chan<- pushJob, done <-chan struct{}) *retryQueue {
	return &retryQueue{out: out, done: done, pending: map[*time.Timer]struct{}{}}
}

func (q *retryQueue) Enqueue(job pushJob, delay time.Duration) {
	q.mu.Lock()
	var t *time.Timer
	t = time.AfterFunc(max(delay, 0), func() {
		q.mu.Lock()
		delete(q.pending, t)
		metricPushRetryPending.Set(int64(len(q.pending)))
		q.mu.Unlock()
		select {
		case <-q.done:
		case q.out <- job:
			metricPushQueueLen.Set(int64(len(q.out)))
		}
	})
	q.pending[t] = struct{}{}
	metricPushRetryPending.Set(int64(len(q.pending)))
	q.mu.Unlock()
}

func (q *retryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

func (q *retryQueue) stopOnDone() {
	<-q.done
	q.mu.Lock()
	defer q.mu.Unlock()
	for t := range q.pending {
		t.Stop()
		delete(q.pending, t)
	}
	metricPushRetryPending.Set(0)
}
