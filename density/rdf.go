/*
 * rdf.go, part of freud.
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package density contains the radial distribution function, g(r), of a set of
// points in a periodic box.
package density

import (
	"math"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/histo"
	"github.com/jennyfothergill/freud/locality"
	"github.com/jennyfothergill/freud/logging"
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pairs closer than this (squared) are considered the same point.
const selfDist2 = 1e-12

// RDF accumulates the radial distribution function of a set of query points
// around a set of points, over any number of frames.
type RDF struct {
	opts  *freud.Options
	axis  *histo.Axis
	hist  *histo.Histogram[uint64]
	local *histo.Local[uint64]
	lc    *locality.LinkCell
	rMin  float64
	rMax  float64

	frames int
	np, nq int
	volume float64
	is2D   bool

	dirty bool
	rdf   []float64
	nr    []float64
}

// NewRDF returns an RDF with bins bins between rMin and rMax.
func NewRDF(bins int, rMax, rMin float64, opts ...*freud.Options) (*RDF, error) {
	if bins < 1 {
		return nil, freud.ConfigError("density.NewRDF", "The RDF requires a nonzero number of bins")
	}
	if !(rMax > 0) {
		return nil, freud.ConfigError("density.NewRDF", "The RDF requires a positive rMax, got %g", rMax)
	}
	if rMin < 0 {
		return nil, freud.ConfigError("density.NewRDF", "The RDF requires rMin to be non-negative, got %g", rMin)
	}
	if rMax <= rMin {
		return nil, freud.ConfigError("density.NewRDF", "The RDF requires rMax (%g) to be larger than rMin (%g)", rMax, rMin)
	}
	axis, err := histo.NewAxis(bins, rMin, rMax)
	if err != nil {
		return nil, freud.ErrDecorate(err, "density.NewRDF")
	}
	hist, err := histo.New[uint64](axis)
	if err != nil {
		return nil, freud.ErrDecorate(err, "density.NewRDF")
	}
	lc, err := locality.NewLinkCell(rMax)
	if err != nil {
		return nil, freud.ErrDecorate(err, "density.NewRDF")
	}
	o := freud.PickOptions(opts...)
	r := &RDF{
		opts:  o,
		axis:  axis,
		hist:  hist,
		local: histo.NewLocal(hist, o.Workers()),
		lc:    lc,
		rMin:  rMin,
		rMax:  rMax,
		rdf:   make([]float64, bins),
		nr:    make([]float64, bins),
	}
	return r, nil
}

// Accumulate adds to the RDF the pairs between queryPoints and points
// in the box b. If queryPoints is nil, points is used.
func (R *RDF) Accumulate(b freud.Box, points, queryPoints *v3.Matrix) error {
	defer logging.Track("density.RDF.Accumulate")()
	if points == nil {
		panic(freud.ErrNilPoints)
	}
	if queryPoints == nil {
		queryPoints = points
	}
	if b == nil {
		return freud.NewError(freud.ErrCompute, "density.RDF.Accumulate", "Nil box")
	}
	if err := R.checkBox(b); err != nil {
		return err
	}
	if err := R.lc.Compute(b, points); err != nil {
		return freud.ErrDecorate(err, "density.RDF.Accumulate")
	}
	logging.Printf("density.RDF.Accumulate: %d points, %d query points, box %v, cells %v", points.NVecs(), queryPoints.NVecs(), b.L(), R.lc.Dims())
	nb := locality.NewNeighbors(R.lc)
	R.local.EnsureWorkers(R.opts.Workers())
	R.opts.For(queryPoints.NVecs(), func(i, w int) {
		q := queryPoints.Vec(i)
		it := nb.Of(q)
		for j, ok := it.Next(); ok; j, ok = it.Next() {
			d := b.Wrap(r3.Sub(points.Vec(j), q))
			r2 := r3.Norm2(d)
			if r2 < selfDist2 {
				continue
			}
			if bin, in := R.axis.Bin(math.Sqrt(r2)); in {
				R.local.Increment(w, bin)
			}
		}
	})
	R.frames++
	R.np = points.NVecs()
	R.nq = queryPoints.NVecs()
	R.volume = b.Volume()
	R.is2D = b.Is2D()
	R.dirty = true
	return nil
}

// checkBox returns an error if rMax is too large for the minimum image
// convention in b.
func (R *RDF) checkBox(b freud.Box) error {
	per := [3]bool{true, true, true}
	if p, ok := b.(interface{ Periodic() [3]bool }); ok {
		per = p.Periodic()
	}
	l := b.L()
	ls := [3]float64{l.X, l.Y, l.Z}
	for i, v := range ls {
		if i == 2 && b.Is2D() {
			break
		}
		if per[i] && 2*R.rMax > v {
			return freud.NewError(freud.ErrCompute, "density.RDF.Accumulate", "rMax (%g) is larger than half the box side (%g)", R.rMax, v)
		}
	}
	return nil
}

func (R *RDF) reduce() {
	if !R.dirty {
		return
	}
	defer logging.Track("density.RDF.reduce")()
	R.local.ReduceInto(R.hist, R.opts)
	clear(R.rdf)
	clear(R.nr)
	R.dirty = false
	if R.frames == 0 || R.np == 0 || R.nq == 0 {
		return
	}
	edges := R.axis.Edges()
	frames := float64(R.frames)
	dens := float64(R.np) / R.volume
	pref := 1 / (float64(R.nq) * dens * frames)
	counts := R.hist.View()
	var cum float64
	for i, c := range counts {
		R.rdf[i] = float64(c) * pref / shellVolume(edges[i], edges[i+1], R.is2D)
		cum += float64(c)
		R.nr[i] = cum / (float64(R.nq) * frames)
	}
}

func shellVolume(r1, r2 float64, is2D bool) float64 {
	if is2D {
		return math.Pi * (r2*r2 - r1*r1)
	}
	return 4.0 / 3.0 * math.Pi * (r2*r2*r2 - r1*r1*r1)
}

// RDF returns g(r) per bin. The slice belongs to R and is only valid until the
// next call to Accumulate or Reset.
func (R *RDF) RDF() []float64 {
	R.reduce()
	return R.rdf
}

// NR returns the mean cumulative number of points within each bin's outer edge of a
// query point. The slice belongs to R.
func (R *RDF) NR() []float64 {
	R.reduce()
	return R.nr
}

// BinCounts returns the raw pair counts.
func (R *RDF) BinCounts() []uint64 {
	R.reduce()
	return R.hist.View()
}

// BinCenters returns the centers of the r bins.
func (R *RDF) BinCenters() []float64 { return R.axis.Centers() }

// BinEdges returns the bins+1 edges of the r bins.
func (R *RDF) BinEdges() []float64 { return R.axis.Edges() }

// Bounds returns rMin and rMax.
func (R *RDF) Bounds() (float64, float64) { return R.rMin, R.rMax }

// FrameCount returns the number of frames accumulated since the last Reset.
func (R *RDF) FrameCount() int { return R.frames }

// Reset clears all the accumulated data.
func (R *RDF) Reset() {
	R.local.Reset()
	R.hist.Reset()
	R.frames = 0
	R.dirty = true
}
