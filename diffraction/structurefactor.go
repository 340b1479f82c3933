/*
 * structurefactor.go, part of freud.
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

// Package diffraction computes the static structure factor S(k) of a set of
// points, either directly from all pairwise distances (Debye scattering) or as the
// Fourier transform of the radial distribution function.
package diffraction

import (
	"math"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/density"
	"github.com/jennyfothergill/freud/histo"
	"github.com/jennyfothergill/freud/logging"
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
)

// RDFBins is the number of bins of the RDF used by the RDF method.
// It must be odd, for the Simpson rule.
const RDFBins = 1001

// RDFer is a radial distribution function that the RDF method can integrate.
type RDFer interface {
	Accumulate(b freud.Box, points, queryPoints *v3.Matrix) error
	BinCenters() []float64
	RDF() []float64
}

// RDFFactory returns a new, empty, RDFer with bins bins between 0 and rMax.
type RDFFactory func(bins int, rMax float64) (RDFer, error)

// StaticStructureFactor accumulates S(k) over any number of frames.
type StaticStructureFactor struct {
	opts      *freud.Options
	direct    bool
	axis      *histo.Axis
	centers   []float64
	hist      *histo.Histogram[float64]
	local     *histo.Local[float64]
	newRDF    RDFFactory
	distances *mat.Dense

	frames    int
	minValidK float64
	dirty     bool
	sk        []float64
}

// NewStaticStructureFactor returns a structure factor with bins bins between kMin
// and kMax. If direct is true, the direct method is used, otherwise, the
// RDF method.
func NewStaticStructureFactor(bins int, kMax, kMin float64, direct bool, opts ...*freud.Options) (*StaticStructureFactor, error) {
	if bins < 1 {
		return nil, freud.ConfigError("diffraction.NewStaticStructureFactor", "StaticStructureFactor requires a nonzero number of bins")
	}
	if !(kMax > 0) {
		return nil, freud.ConfigError("diffraction.NewStaticStructureFactor", "StaticStructureFactor requires kMax to be positive, got %g", kMax)
	}
	if kMax <= kMin {
		return nil, freud.ConfigError("diffraction.NewStaticStructureFactor", "StaticStructureFactor requires that kMax (%g) be greater than kMin (%g)", kMax, kMin)
	}
	axis, err := histo.NewAxis(bins, kMin, kMax)
	if err != nil {
		return nil, freud.ErrDecorate(err, "diffraction.NewStaticStructureFactor")
	}
	hist, err := histo.New[float64](axis)
	if err != nil {
		return nil, freud.ErrDecorate(err, "diffraction.NewStaticStructureFactor")
	}
	o := freud.PickOptions(opts...)
	S := &StaticStructureFactor{
		opts:      o,
		direct:    direct,
		axis:      axis,
		centers:   axis.Centers(),
		hist:      hist,
		local:     histo.NewLocal(hist, o.Workers()),
		minValidK: math.Inf(1),
		sk:        make([]float64, bins),
	}
	S.newRDF = func(bins int, rMax float64) (RDFer, error) {
		r, err := density.NewRDF(bins, rMax, 0, S.opts)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return S, nil
}

// SetRDFFactory replaces the function used to obtain an RDF in each call to Accumulate
// with the RDF method.
func (S *StaticStructureFactor) SetRDFFactory(f RDFFactory) {
	if f != nil {
		S.newRDF = f
	}
}

// Accumulate adds one frame to S(k). queryPoints are the points whose structure
// factor is computed, if nil, points is used. With the direct method, only queryPoints
// are used.
func (S *StaticStructureFactor) Accumulate(b freud.Box, points, queryPoints *v3.Matrix) error {
	defer logging.Track("diffraction.StaticStructureFactor.Accumulate")()
	if points == nil {
		panic(freud.ErrNilPoints)
	}
	if queryPoints == nil {
		queryPoints = points
	}
	if b == nil {
		return freud.NewError(freud.ErrCompute, "diffraction.StaticStructureFactor.Accumulate", "Nil box")
	}
	S.local.EnsureWorkers(S.opts.Workers())
	if S.direct {
		S.accumulateDirect(b, queryPoints)
	} else if err := S.accumulateRDF(b, points, queryPoints); err != nil {
		return freud.ErrDecorate(err, "diffraction.StaticStructureFactor.Accumulate")
	}
	S.frames++
	S.dirty = true
	return nil
}

func (S *StaticStructureFactor) accumulateDirect(b freud.Box, q *v3.Matrix) {
	n := q.NVecs()
	if n == 0 {
		return
	}
	S.distances = b.AllDistances(q, q, S.distances)
	dist := S.distances
	logging.Printf("diffraction.StaticStructureFactor: direct method, %d points, box %v", n, b.L())
	S.opts.For(len(S.centers), func(k, w int) {
		kc := S.centers[k]
		var sk float64
		for i := 0; i < n; i++ {
			for _, r := range dist.RawRowView(i) {
				sk += sinc(kc * r)
			}
		}
		S.local.Add(w, k, sk/float64(n))
	})
}

func (S *StaticStructureFactor) accumulateRDF(b freud.Box, points, q *v3.Matrix) error {
	l := b.L()
	minL := math.Min(l.X, l.Y)
	if !b.Is2D() {
		minL = math.Min(minL, l.Z)
	}
	rMax := math.Nextafter(0.5*minL, 0)
	rdf, err := S.newRDF(RDFBins, rMax)
	if err != nil {
		return err
	}
	if err = rdf.Accumulate(b, points, q); err != nil {
		return err
	}
	centers := rdf.BinCenters()
	g := rdf.RDF()
	if len(g) != len(centers) {
		panic(freud.ErrShape)
	}
	//4 pi N / V
	norm := 4 * math.Pi * float64(q.NVecs()) / b.Volume()
	logging.Printf("diffraction.StaticStructureFactor: RDF method, %d points, rMax %g", q.NVecs(), rMax)
	S.opts.For(len(S.centers), func(k, w int) {
		kc := S.centers[k]
		f := make([]float64, len(centers))
		for i, r := range centers {
			f[i] = r * r * (g[i] - 1) * sinc(kc*r)
		}
		S.local.Add(w, k, norm*integrate.Simpsons(centers, f))
	})
	S.minValidK = math.Min(S.minValidK, 2*math.Pi/rMax)
	return nil
}

func (S *StaticStructureFactor) reduce() {
	if !S.dirty {
		return
	}
	S.local.ReduceInto(S.hist, S.opts)
	S.dirty = false
	merged := S.hist.View()
	if S.frames == 0 {
		clear(S.sk)
		return
	}
	frames := float64(S.frames)
	for i, v := range merged {
		switch {
		case !S.direct:
			S.sk[i] = 1 + v/frames
		case S.frames > 1:
			S.sk[i] = v / frames
		default:
			S.sk[i] = v
		}
	}
}

// SK returns S(k) for each k bin. The slice belongs to S, and is valid until the
// next call to Accumulate or Reset.
func (S *StaticStructureFactor) SK() []float64 {
	S.reduce()
	return S.sk
}

// MinValidK returns the smallest k for which the RDF method is valid, given the
// boxes accumulated so far. It is +Inf for the direct method.
func (S *StaticStructureFactor) MinValidK() float64 { return S.minValidK }

// FrameCount returns the number of frames accumulated since the last Reset.
func (S *StaticStructureFactor) FrameCount() int { return S.frames }

// BinCenters returns the centers of the k bins.
func (S *StaticStructureFactor) BinCenters() []float64 { return S.axis.Centers() }

// BinEdges returns the edges of the k bins.
func (S *StaticStructureFactor) BinEdges() []float64 { return S.axis.Edges() }

// Bounds returns kMin and kMax.
func (S *StaticStructureFactor) Bounds() (float64, float64) { return S.axis.Min(), S.axis.Max() }

// Direct returns true if the direct method is used.
func (S *StaticStructureFactor) Direct() bool { return S.direct }

// Reset clears all the accumulated data.
func (S *StaticStructureFactor) Reset() {
	S.local.Reset()
	S.hist.Reset()
	S.frames = 0
	S.minValidK = math.Inf(1)
	S.dirty = true
}

// sinc returns sin(x)/x, without the factor of pi.
func sinc(x float64) float64 {
	if math.Abs(x) < 1e-4 {
		return 1 - x*x/6
	}
	return math.Sin(x) / x
}
