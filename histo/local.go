package histo

import (
	"github.com/jennyfothergill/freud"
)

// Local is a histogram with one private copy per worker, so workers can
// write to it concurrently without locking. Worker w must be the only
// goroutine that writes to slot w. The copies are allocated the first
// time their worker writes, and are merged by ReduceInto.
type Local[T Value] struct {
	proto *Histogram[T]
	slots []*Histogram[T]
}

// NewLocal returns a thread-local histogram with the geometry of h and
// room for workers workers. h itself is not modified.
func NewLocal[T Value](h *Histogram[T], workers int) *Local[T] {
	if workers < 1 {
		workers = 1
	}
	return &Local[T]{proto: h.copyEmpty(), slots: make([]*Histogram[T], workers)}
}

// Workers returns the number of slots.
func (l *Local[T]) Workers() int { return len(l.slots) }

// EnsureWorkers grows the slot array so at least workers workers can write.
// It must not be called while workers are writing.
func (l *Local[T]) EnsureWorkers(workers int) {
	if workers <= len(l.slots) {
		return
	}
	ns := make([]*Histogram[T], workers)
	copy(ns, l.slots)
	l.slots = ns
}

func (l *Local[T]) slot(worker int) *Histogram[T] {
	if worker < 0 || worker >= len(l.slots) {
		panic(freud.ErrWorker)
	}
	s := l.slots[worker]
	if s == nil {
		s = l.proto.copyEmpty()
		l.slots[worker] = s
	}
	return s
}

// Increment adds one to the bin flat of the copy private to worker.
func (l *Local[T]) Increment(worker, flat int) {
	l.slot(worker).bins[flat]++
}

// Add adds v to the bin flat of the copy private to worker.
func (l *Local[T]) Add(worker, flat int, v T) {
	l.slot(worker).bins[flat] += v
}

// Slot returns the bins private to worker, allocating them if needed.
// The usual rules apply: only worker may write to the returned slice.
func (l *Local[T]) Slot(worker int) []T {
	return l.slot(worker).bins
}

// ReduceInto overwrites target with the sum of all the private copies.
// Copies that were never written are skipped. The sum is computed in parallel
// over bins, using the given options. target must have the geometry of the
// histogram l was created from, otherwise ReduceInto panics.
// ReduceInto doesn't modify the private copies, so calling it twice gives the same result.
func (l *Local[T]) ReduceInto(target *Histogram[T], opts ...*freud.Options) {
	if len(target.bins) != len(l.proto.bins) {
		panic(freud.ErrShape)
	}
	live := make([]*Histogram[T], 0, len(l.slots))
	for _, s := range l.slots {
		if s != nil {
			live = append(live, s)
		}
	}
	o := freud.PickOptions(opts...)
	n := len(target.bins)
	chunks := o.Workers()
	if chunks > n {
		chunks = n
	}
	if chunks < 1 {
		chunks = 1
	}
	size := (n + chunks - 1) / chunks
	o.For(chunks, func(c, _ int) {
		lo := c * size
		if lo >= n {
			return
		}
		hi := lo + size
		if hi > n {
			hi = n
		}
		dst := target.bins[lo:hi]
		clear(dst)
		for _, s := range live {
			for i, v := range s.bins[lo:hi] {
				dst[i] += v
			}
		}
	})
}

// Reset zeroes every allocated private copy. The memory is kept.
func (l *Local[T]) Reset() {
	for _, s := range l.slots {
		if s != nil {
			s.Reset()
		}
	}
}
