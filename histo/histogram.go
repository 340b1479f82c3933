package histo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jennyfothergill/freud"
)

// Value is the set of types that can be counted in a histogram.
type Value interface {
	~uint32 | ~uint64 | ~int | ~int64 | ~float32 | ~float64
}

// Histogram is a dense, multi-dimensional histogram over one or more
// regular axes. Bins are stored in row-major order, so the last axis
// varies fastest.
type Histogram[T Value] struct {
	axes   []*Axis
	shape  []int
	stride []int
	bins   []T
}

// New returns an empty histogram with the given axes.
func New[T Value](axes ...*Axis) (*Histogram[T], error) {
	if len(axes) == 0 {
		return nil, freud.ConfigError("histo.New", "A histogram needs at least one axis")
	}
	h := &Histogram[T]{axes: axes}
	h.shape = make([]int, len(axes))
	h.stride = make([]int, len(axes))
	size := 1
	for i, a := range axes {
		if a == nil {
			return nil, freud.ConfigError("histo.New", "Axis %d is nil", i)
		}
		h.shape[i] = a.Bins()
	}
	for i := len(axes) - 1; i >= 0; i-- {
		h.stride[i] = size
		size *= h.shape[i]
	}
	h.bins = make([]T, size)
	return h, nil
}

// Axes returns the axes of the histogram. They must not be modified.
func (h *Histogram[T]) Axes() []*Axis { return h.axes }

// Axis returns the i-th axis.
func (h *Histogram[T]) Axis(i int) *Axis { return h.axes[i] }

// Shape returns a copy of the number of bins per axis.
func (h *Histogram[T]) Shape() []int {
	return append([]int(nil), h.shape...)
}

// Size returns the total number of bins.
func (h *Histogram[T]) Size() int { return len(h.bins) }

// Index returns the flat, row-major, index of the bin with multi-index
// idx. It panics if the number of indexes doesn't match the number of axes,
// or if an index is out of range.
func (h *Histogram[T]) Index(idx ...int) int {
	if len(idx) != len(h.shape) {
		panic(freud.ErrShape)
	}
	f := 0
	for i, v := range idx {
		if v < 0 || v >= h.shape[i] {
			panic(freud.ErrShape)
		}
		f += v * h.stride[i]
	}
	return f
}

// Locate returns the flat index of the bin containing the coordinates c,
// one per axis. It returns false if any coordinate falls outside its axis.
func (h *Histogram[T]) Locate(c ...float64) (int, bool) {
	if len(c) != len(h.axes) {
		panic(freud.ErrShape)
	}
	f := 0
	for i, a := range h.axes {
		b, ok := a.Bin(c[i])
		if !ok {
			return -1, false
		}
		f += b * h.stride[i]
	}
	return f, true
}

// At returns the value in the bin with the given flat index.
func (h *Histogram[T]) At(flat int) T { return h.bins[flat] }

// Increment adds one to the bin with the given flat index.
func (h *Histogram[T]) Increment(flat int) { h.bins[flat]++ }

// AddTo adds v to the bin with the given flat index.
func (h *Histogram[T]) AddTo(flat int, v T) { h.bins[flat] += v }

// View returns the flat bins of the histogram. The slice is
// shared with h, and is only valid until the next change to h.
func (h *Histogram[T]) View() []T { return h.bins }

// Reset zeroes all bins, keeping the axes and the memory.
func (h *Histogram[T]) Reset() {
	clear(h.bins)
}

// Compatible returns true if h and o have equal axes.
func (h *Histogram[T]) Compatible(o *Histogram[T]) bool {
	if len(h.axes) != len(o.axes) {
		return false
	}
	for i, a := range h.axes {
		if !a.Equal(o.axes[i]) {
			return false
		}
	}
	return true
}

// Add adds, bin by bin, the contents of o to h. It returns an error
// if the histograms are not compatible.
func (h *Histogram[T]) Add(o *Histogram[T]) error {
	if !h.Compatible(o) {
		return freud.NewError(freud.ErrCompute, "histo.Histogram.Add", "Histograms with different axes can't be added")
	}
	for i, v := range o.bins {
		h.bins[i] += v
	}
	return nil
}

// Sum returns the sum of all bins.
func (h *Histogram[T]) Sum() T {
	var s T
	for _, v := range h.bins {
		s += v
	}
	return s
}

// copyEmpty returns a zeroed histogram with the same axes as h.
func (h *Histogram[T]) copyEmpty() *Histogram[T] {
	return &Histogram[T]{
		axes:   h.axes,
		shape:  h.shape,
		stride: h.stride,
		bins:   make([]T, len(h.bins)),
	}
}

func (h *Histogram[T]) String() string {
	as := make([]string, 0, len(h.axes))
	for _, a := range h.axes {
		as = append(as, a.String())
	}
	return fmt.Sprintf("Histogram %v sum: %v\n%s", h.shape, h.Sum(), strings.Join(as, "\n"))
}

type jsonHistogram[T Value] struct {
	Axes []*Axis `json:"axes"`
	Bins []T     `json:"bins"`
}

func (h *Histogram[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHistogram[T]{Axes: h.axes, Bins: h.bins})
}

func (h *Histogram[T]) UnmarshalJSON(b []byte) error {
	var j jsonHistogram[T]
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	nh, err := New[T](j.Axes...)
	if err != nil {
		return err
	}
	if len(j.Bins) != len(nh.bins) {
		return freud.NewError(freud.ErrConfig, "histo.Histogram.UnmarshalJSON", "Expected %d bins, got %d", len(nh.bins), len(j.Bins))
	}
	copy(nh.bins, j.Bins)
	*h = *nh
	return nil
}
