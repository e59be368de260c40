package seating

import "slices"

// waitlist holds unseated parties in one FIFO bucket per party size. Bucket
// index is the party size; index 0 is never used.
type waitlist struct {
	buckets [][]*Party
	count   int
	nextSeq uint64
}

func newWaitlist(maxSize int) *waitlist {
	if maxSize < 1 {
		maxSize = 1
	}
	return &waitlist{buckets: make([][]*Party, maxSize+1)}
}

func (w *waitlist) enqueue(p *Party) {
	if p.arrivalSeq == 0 {
		w.nextSeq++
		p.arrivalSeq = w.nextSeq
	}
	if p.size >= len(w.buckets) {
		grown := make([][]*Party, p.size+1)
		copy(grown, w.buckets)
		w.buckets = grown
	}
	w.buckets[p.size] = append(w.buckets[p.size], p)
	w.count++
}

// requeue puts a polled party back at the head of its bucket.
func (w *waitlist) requeue(p *Party) {
	w.buckets[p.size] = slices.Insert(w.buckets[p.size], 0, p)
	w.count++
}

func (w *waitlist) remove(p *Party) bool {
	if p.size >= len(w.buckets) {
		return false
	}
	b := w.buckets[p.size]
	idx := slices.Index(b, p)
	if idx < 0 {
		return false
	}
	w.buckets[p.size] = slices.Delete(b, idx, idx+1)
	w.count--
	return true
}

func (w *waitlist) len() int { return w.count }

// pollBestFit removes and returns the earliest-arrived party among the heads
// of buckets 1..freeSeats. On equal arrival stamps the smaller size wins.
func (w *waitlist) pollBestFit(freeSeats int) *Party {
	hi := min(freeSeats, len(w.buckets)-1)
	best := 0
	for size := 1; size <= hi; size++ {
		b := w.buckets[size]
		if len(b) == 0 {
			continue
		}
		if best == 0 || b[0].arrivalSeq < w.buckets[best][0].arrivalSeq {
			best = size
		}
	}
	if best == 0 {
		return nil
	}
	b := w.buckets[best]
	p := b[0]
	b[0] = nil
	w.buckets[best] = b[1:]
	w.count--
	return p
}

// ordered returns every waiting party in arrival order.
func (w *waitlist) ordered() []*Party {
	out := make([]*Party, 0, w.count)
	for _, b := range w.buckets {
		out = append(out, b...)
	}
	slices.SortFunc(out, func(a, b *Party) int {
		switch {
		case a.arrivalSeq < b.arrivalSeq:
			return -1
		case a.arrivalSeq > b.arrivalSeq:
			return 1
		default:
			return a.size - b.size
		}
	})
	return out
}
