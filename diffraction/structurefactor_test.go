package diffraction

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/box"
	v3 "github.com/jennyfothergill/freud/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// constRDF is an RDFer with a constant g(r) over evenly spaced centers in [0, rMax].
type constRDF struct {
	g       float64
	rMax    float64
	centers []float64
	calls   int
	err     error
}

func (c *constRDF) Accumulate(b freud.Box, points, queryPoints *v3.Matrix) error {
	c.calls++
	return c.err
}

func (c *constRDF) BinCenters() []float64 {
	if c.centers == nil {
		c.centers = floats.Span(make([]float64, RDFBins), 0, c.rMax)
	}
	return c.centers
}

func (c *constRDF) RDF() []float64 {
	g := make([]float64, RDFBins)
	for i := range g {
		g[i] = c.g
	}
	return g
}

func randomPoints(rng *rand.Rand, n int, l float64) *v3.Matrix {
	vecs := make([]r3.Vec, n)
	for i := range vecs {
		vecs[i] = r3.Vec{X: (rng.Float64() - 0.5) * l, Y: (rng.Float64() - 0.5) * l, Z: (rng.Float64() - 0.5) * l}
	}
	return v3.FromVecs(vecs)
}

func TestDirectTwoPoints(Te *testing.T) {
	sf, err := NewStaticStructureFactor(1, math.Pi, 0, true)
	require.NoError(Te, err)
	p := v3.FromVecs([]r3.Vec{{}, {X: 1}})
	require.NoError(Te, sf.Accumulate(box.Cube(10), p, nil))
	assert.InDelta(Te, 1+2/math.Pi, sf.SK()[0], 1e-12)
	assert.Equal(Te, 1, sf.FrameCount())
	assert.True(Te, math.IsInf(sf.MinValidK(), 1))
	//The average over identical frames is the same.
	require.NoError(Te, sf.Accumulate(box.Cube(10), p, nil))
	assert.InDelta(Te, 1+2/math.Pi, sf.SK()[0], 1e-12)
}

func TestDirectSinglePoint(Te *testing.T) {
	sf, _ := NewStaticStructureFactor(20, 10, 0, true)
	require.NoError(Te, sf.Accumulate(box.Cube(5), v3.FromVecs([]r3.Vec{{X: 1}}), nil))
	for _, v := range sf.SK() {
		assert.InDelta(Te, 1.0, v, 1e-12)
	}
}

func TestDirectWorkersAndReset(Te *testing.T) {
	rng := rand.New(rand.NewSource(9))
	p := randomPoints(rng, 60, 6)
	var ref []float64
	for _, w := range []int{1, 4} {
		o := freud.DefaultOptions()
		o.Workers(w)
		sf, _ := NewStaticStructureFactor(30, 12, 0.5, true, o)
		require.NoError(Te, sf.Accumulate(box.Cube(6), p, nil))
		got := append([]float64(nil), sf.SK()...)
		if ref == nil {
			ref = got
			continue
		}
		assert.Equal(Te, ref, got)
		sf.Reset()
		assert.Equal(Te, 0, sf.FrameCount())
		for _, v := range sf.SK() {
			assert.Equal(Te, 0.0, v)
		}
	}
}

func TestRDFMethodConstant(Te *testing.T) {
	b := box.Cube(10)
	p := v3.Zeros(100)
	sf, err := NewStaticStructureFactor(4, 5, 1, false)
	require.NoError(Te, err)
	mock := &constRDF{g: 1}
	sf.SetRDFFactory(func(bins int, rMax float64) (RDFer, error) {
		assert.Equal(Te, RDFBins, bins)
		mock.rMax = rMax
		return mock, nil
	})
	require.NoError(Te, sf.Accumulate(b, p, nil))
	assert.Equal(Te, math.Nextafter(5, 0), mock.rMax)
	assert.InDelta(Te, 2*math.Pi/5, sf.MinValidK(), 1e-12)
	for _, v := range sf.SK() {
		assert.InDelta(Te, 1.0, v, 1e-12)
	}

	//g = 2 gives 1 + 4 pi rho (sin kR - kR cos kR)/k^3
	sf.Reset()
	assert.True(Te, math.IsInf(sf.MinValidK(), 1))
	mock.g = 2
	mock.centers = nil
	require.NoError(Te, sf.Accumulate(b, p, nil))
	require.NoError(Te, sf.Accumulate(b, p, nil))
	assert.Equal(Te, 3, mock.calls)
	rho := 100.0 / 1000
	R := mock.rMax
	for i, k := range sf.BinCenters() {
		want := 1 + 4*math.Pi*rho*(math.Sin(k*R)-k*R*math.Cos(k*R))/(k*k*k)
		assert.InDelta(Te, want, sf.SK()[i], 1e-6*math.Abs(want)+1e-9, "k=%g", k)
	}
}

func TestRDFMethodError(Te *testing.T) {
	sf, _ := NewStaticStructureFactor(4, 5, 1, false)
	sf.SetRDFFactory(func(bins int, rMax float64) (RDFer, error) {
		return &constRDF{err: freud.NewError(freud.ErrCompute, "mock", "failed")}, nil
	})
	err := sf.Accumulate(box.Cube(10), v3.Zeros(3), nil)
	assert.True(Te, errors.Is(err, freud.ErrCompute))
	assert.Equal(Te, 0, sf.FrameCount())
	assert.True(Te, math.IsInf(sf.MinValidK(), 1))
}

func TestRDFMethodUncorrelated(Te *testing.T) {
	rng := rand.New(rand.NewSource(21))
	b := box.Cube(20)
	sf, err := NewStaticStructureFactor(40, 10, 0, false)
	require.NoError(Te, err)
	for f := 0; f < 20; f++ {
		require.NoError(Te, sf.Accumulate(b, randomPoints(rng, 100, 20), nil))
	}
	minK := sf.MinValidK()
	assert.InDelta(Te, 2*math.Pi/10, minK, 1e-6)
	for i, k := range sf.BinCenters() {
		if k < minK {
			continue
		}
		assert.InDelta(Te, 1.0, sf.SK()[i], 0.3, "k=%g", k)
	}
}

func TestNewStaticStructureFactorErrors(Te *testing.T) {
	for _, c := range []struct {
		bins       int
		kMax, kMin float64
	}{{0, 1, 0}, {10, 0, -1}, {10, 1, 1}, {10, 1, 2}} {
		_, err := NewStaticStructureFactor(c.bins, c.kMax, c.kMin, true)
		assert.True(Te, errors.Is(err, freud.ErrConfig), "%v", c)
	}
}

func TestSinc(Te *testing.T) {
	assert.Equal(Te, 1.0, sinc(0))
	assert.InDelta(Te, 2/math.Pi, sinc(math.Pi/2), 1e-15)
	assert.InDelta(Te, math.Sin(1e-3)/1e-3, sinc(1e-3), 1e-15)
}
