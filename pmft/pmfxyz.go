/*
 * pmfxyz.go, part of freud.
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

// Package pmft accumulates histograms of the relative positions of points
// around oriented reference points. The counts are proportional to the pair
// correlation function, from which a potential of mean force can be obtained
// as -kT ln(PCF). The counts are returned raw, and normalizing them is left to the caller.
package pmft

import (
	"io"
	"math"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/histo"
	"github.com/jennyfothergill/freud/locality"
	"github.com/jennyfothergill/freud/logging"
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Pairs closer than this (squared) are taken to be a point and itself.
const selfDist2 = 1e-6

// PMFXYZ accumulates a 3D histogram, in Cartesian coordinates, of the
// positions of points relative to the frame of each reference point.
// The histogram covers [-max, max) along each axis.
type PMFXYZ struct {
	opts  *freud.Options
	max   r3.Vec
	axes  [3]*histo.Axis
	hist  *histo.Histogram[uint64]
	local *histo.Local[uint64]
	lc    *locality.LinkCell
	dirty bool
}

// NewPMFXYZ returns a new PMFXYZ with nx, ny and nz bins between -max and max
// along x, y and z respectively.
func NewPMFXYZ(maxX, maxY, maxZ float64, nx, ny, nz int, opts ...*freud.Options) (*PMFXYZ, error) {
	maxes := [3]float64{maxX, maxY, maxZ}
	bins := [3]int{nx, ny, nz}
	names := [3]string{"x", "y", "z"}
	P := &PMFXYZ{opts: freud.PickOptions(opts...), max: r3.Vec{X: maxX, Y: maxY, Z: maxZ}}
	for i := range maxes {
		if bins[i] < 1 {
			return nil, freud.ConfigError("pmft.NewPMFXYZ", "There must be at least 1 bin in %s", names[i])
		}
		if !(maxes[i] > 0) || math.IsInf(maxes[i], 0) {
			return nil, freud.ConfigError("pmft.NewPMFXYZ", "max_%s must be positive, got %g", names[i], maxes[i])
		}
		if d := 2 * maxes[i] / float64(bins[i]); d > maxes[i] {
			return nil, freud.ConfigError("pmft.NewPMFXYZ", "max_%s (%g) must be greater than the bin width d%s (%g)", names[i], maxes[i], names[i], d)
		}
		a, err := histo.NewAxis(bins[i], -maxes[i], maxes[i])
		if err != nil {
			return nil, freud.ErrDecorate(err, "pmft.NewPMFXYZ")
		}
		P.axes[i] = a
	}
	var err error
	P.hist, err = histo.New[uint64](P.axes[:]...)
	if err != nil {
		return nil, freud.ErrDecorate(err, "pmft.NewPMFXYZ")
	}
	P.local = histo.NewLocal(P.hist, P.opts.Workers())
	P.lc, err = locality.NewLinkCell(P.Cutoff())
	if err != nil {
		return nil, freud.ErrDecorate(err, "pmft.NewPMFXYZ")
	}
	return P, nil
}

// Cutoff returns the largest distance from a reference point that can fall
// in the histogram.
func (P *PMFXYZ) Cutoff() float64 {
	return r3.Norm(P.max)
}

// Accumulate adds to the histogram the positions of points around each of
// refPoints, in the frame of the reference point given by refOrientations and
// each of its faces. faceOrientations holds nFaces unit quaternions per reference
// point, the k-th face of reference i being faceOrientations[i*nFaces+k]. If it is nil,
// each reference point has one face, with the identity orientation. A nil refOrientations
// also means identity orientations. orientations, the orientations of points, don't
// affect the result, but if given, there must be one per point.
// Mismatched lengths cause a panic.
func (P *PMFXYZ) Accumulate(b freud.Box, refPoints *v3.Matrix, refOrientations []quat.Number,
	points *v3.Matrix, orientations []quat.Number, faceOrientations []quat.Number, nFaces int) error {
	defer logging.Track("pmft.PMFXYZ.Accumulate")()
	if refPoints == nil || points == nil {
		panic(freud.ErrNilPoints)
	}
	nref := refPoints.NVecs()
	np := points.NVecs()
	if refOrientations != nil && len(refOrientations) != nref {
		panic(freud.ErrShape)
	}
	if orientations != nil && len(orientations) != np {
		panic(freud.ErrShape)
	}
	if faceOrientations == nil {
		nFaces = 1
	} else if nFaces < 1 || len(faceOrientations) != nref*nFaces {
		panic(freud.ErrShape)
	}
	if b == nil {
		return freud.NewError(freud.ErrCompute, "pmft.PMFXYZ.Accumulate", "Nil box")
	}
	if err := P.lc.Compute(b, points); err != nil {
		return freud.ErrDecorate(err, "pmft.PMFXYZ.Accumulate")
	}
	logging.Printf("pmft.PMFXYZ.Accumulate: %d reference points, %d points, %d faces, box %v, cells %v", nref, np, nFaces, b.L(), P.lc.Dims())
	nb := locality.NewNeighbors(P.lc)
	P.local.EnsureWorkers(P.opts.Workers())
	P.opts.For(nref, func(i, w int) {
		ref := refPoints.Vec(i)
		inv := r3.Rotation(quat.Number{Real: 1})
		if refOrientations != nil {
			inv = r3.Rotation(quat.Conj(refOrientations[i]))
		}
		it := nb.Of(ref)
		for j, ok := it.Next(); ok; j, ok = it.Next() {
			d := b.Wrap(r3.Sub(points.Vec(j), ref))
			if r3.Norm2(d) < selfDist2 {
				continue
			}
			d = inv.Rotate(d)
			for k := 0; k < nFaces; k++ {
				v := d
				if faceOrientations != nil {
					v = r3.Rotation(faceOrientations[i*nFaces+k]).Rotate(d)
				}
				if bin, in := P.hist.Locate(v.X, v.Y, v.Z); in {
					P.local.Increment(w, bin)
				}
			}
		}
	})
	P.dirty = true
	return nil
}

func (P *PMFXYZ) reduce() {
	if !P.dirty {
		return
	}
	P.local.ReduceInto(P.hist, P.opts)
	P.dirty = false
}

// PCF returns the accumulated counts, flattened with z varying fastest.
// The slice belongs to P and is valid until the next call to Accumulate or Reset.
func (P *PMFXYZ) PCF() []uint64 {
	P.reduce()
	return P.hist.View()
}

// Histogram returns the reduced histogram. It belongs to P.
func (P *PMFXYZ) Histogram() *histo.Histogram[uint64] {
	P.reduce()
	return P.hist
}

// Reset clears the accumulated counts.
func (P *PMFXYZ) Reset() {
	P.local.Reset()
	P.hist.Reset()
	P.dirty = false
}

// BinCenters returns the centers of the bins along axis (0 for x, 1 for y, 2 for z).
func (P *PMFXYZ) BinCenters(axis int) []float64 { return P.axes[axis].Centers() }

// BinEdges returns the edges of the bins along axis.
func (P *PMFXYZ) BinEdges(axis int) []float64 { return P.axes[axis].Edges() }

// Bounds returns the maximum along each axis.
func (P *PMFXYZ) Bounds() r3.Vec { return P.max }

// NBins returns the number of bins along each axis.
func (P *PMFXYZ) NBins() [3]int {
	return [3]int{P.axes[0].Bins(), P.axes[1].Bins(), P.axes[2].Bins()}
}

// WriteSnapshot writes the reduced histogram to w, in the format
// of histo.WriteSnapshot.
func (P *PMFXYZ) WriteSnapshot(w io.Writer) error {
	return freud.ErrDecorate(histo.WriteSnapshot(w, P.Histogram()), "pmft.PMFXYZ.WriteSnapshot")
}
