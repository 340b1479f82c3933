package histo

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/jennyfothergill/freud"
	"gonum.org/v1/gonum/floats"
)

// Axis is a regular axis of a histogram: bins bins of the same width
// between min (included) and max (excluded).
// An Axis is immutable after creation.
type Axis struct {
	bins     int
	min, max float64
	width    float64
	centers  []float64
	edges    []float64
}

// NewAxis returns a new axis with bins bins between min and max.
func NewAxis(bins int, min, max float64) (*Axis, error) {
	if bins < 1 {
		return nil, freud.ConfigError("histo.NewAxis", "An axis needs at least one bin, got %d", bins)
	}
	if !(max > min) || math.IsInf(max-min, 0) {
		return nil, freud.ConfigError("histo.NewAxis", "The axis maximum must be larger than the minimum, got %g, %g", min, max)
	}
	a := &Axis{bins: bins, min: min, max: max}
	a.width = (max - min) / float64(bins)
	a.centers = make([]float64, bins)
	a.edges = make([]float64, bins+1)
	for i := range a.centers {
		a.centers[i] = min + a.width*(float64(i)+0.5)
	}
	for i := range a.edges {
		a.edges[i] = min + a.width*float64(i)
	}
	a.edges[bins] = max //avoid round-off in the last one
	return a, nil
}

// Bins returns the number of bins in the axis.
func (a *Axis) Bins() int { return a.bins }

// Min returns the lower bound of the axis.
func (a *Axis) Min() float64 { return a.min }

// Max returns the upper bound of the axis.
func (a *Axis) Max() float64 { return a.max }

// Width returns the width of each bin.
func (a *Axis) Width() float64 { return a.width }

// Bin returns the bin that contains c. It returns false if c is
// outside the axis. The index is obtained by truncation, so it is never
// rounded to a neighboring bin.
func (a *Axis) Bin(c float64) (int, bool) {
	f := math.Floor((c - a.min) / a.width)
	if !(f >= 0) || f >= float64(a.bins) { //the negation catches NaNs
		return -1, false
	}
	return int(f), true
}

// Centers copies the bin centers into dest[0], if given and large enough,
// or into a new slice, and returns it.
func (a *Axis) Centers(dest ...[]float64) []float64 {
	d := getCopySlice(len(a.centers), dest...)
	return floats.ScaleTo(d, 1, a.centers)
}

// Edges copies the bins+1 edges of the bins into dest[0], if given and large enough,
// or into a new slice, and returns it.
func (a *Axis) Edges(dest ...[]float64) []float64 {
	d := getCopySlice(len(a.edges), dest...)
	return floats.ScaleTo(d, 1, a.edges)
}

// Equal returns true if a and b have the same bins.
func (a *Axis) Equal(b *Axis) bool {
	return a.bins == b.bins && a.min == b.min && a.max == b.max
}

func (a *Axis) String() string {
	return fmt.Sprintf("Axis bins: %d [%g, %g) width: %g", a.bins, a.min, a.max, a.width)
}

type jsonAxis struct {
	Bins int     `json:"bins"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

func (a *Axis) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonAxis{Bins: a.bins, Min: a.min, Max: a.max})
}

func (a *Axis) UnmarshalJSON(b []byte) error {
	var j jsonAxis
	if err := json.Unmarshal(b, &j); err != nil {
		return err
	}
	na, err := NewAxis(j.Bins, j.Min, j.Max)
	if err != nil {
		return err
	}
	*a = *na
	return nil
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0]
		if len(dest[0]) > N {
			d = dest[0][:N] //floats.ScaleTo wants both slices to _match_
		}
	} else {
		d = make([]float64, N)
	}
	return d

}
