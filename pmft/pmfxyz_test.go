package pmft

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/box"
	"github.com/jennyfothergill/freud/histo"
	v3 "github.com/jennyfothergill/freud/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func newPMF(Te *testing.T, opts ...*freud.Options) *PMFXYZ {
	p, err := NewPMFXYZ(2, 2, 2, 4, 4, 4, opts...)
	require.NoError(Te, err)
	return p
}

func identity(n int) []quat.Number {
	q := make([]quat.Number, n)
	for i := range q {
		q[i] = quat.Number{Real: 1}
	}
	return q
}

func TestPMFXYZSinglePair(Te *testing.T) {
	p := newPMF(Te)
	ref := v3.FromVecs([]r3.Vec{{}})
	pts := v3.FromVecs([]r3.Vec{{X: 0.5, Y: 0.5, Z: 0.5}})
	require.NoError(Te, p.Accumulate(box.Cube(10), ref, identity(1), pts, identity(1), nil, 0))
	pcf := p.PCF()
	h := p.Histogram()
	assert.Equal(Te, uint64(1), pcf[h.Index(2, 2, 2)])
	assert.Equal(Te, uint64(1), h.Sum())
	assert.Equal(Te, []float64{-1.5, -0.5, 0.5, 1.5}, p.BinCenters(0))
	assert.Equal(Te, [3]int{4, 4, 4}, p.NBins())
	assert.InDelta(Te, math.Sqrt(12), p.Cutoff(), 1e-12)

	//additive, and PCF doesn't clear.
	require.NoError(Te, p.Accumulate(box.Cube(10), ref, nil, pts, nil, nil, 0))
	assert.Equal(Te, uint64(2), p.PCF()[h.Index(2, 2, 2)])
	assert.Equal(Te, uint64(2), p.PCF()[h.Index(2, 2, 2)])
	p.Reset()
	assert.Equal(Te, uint64(0), p.Histogram().Sum())
}

func TestPMFXYZOrientations(Te *testing.T) {
	p := newPMF(Te)
	ref := v3.FromVecs([]r3.Vec{{}})
	pts := v3.FromVecs([]r3.Vec{{X: 1.5, Y: 0.5, Z: 0.5}})
	rot := quat.Number(r3.NewRotation(math.Pi/2, r3.Vec{Z: 1}))
	require.NoError(Te, p.Accumulate(box.Cube(10), ref, []quat.Number{rot}, pts, nil, nil, 0))
	h := p.Histogram()
	assert.Equal(Te, uint64(1), h.At(h.Index(2, 0, 2)))

	p.Reset()
	pts = v3.FromVecs([]r3.Vec{{X: 0.5, Y: 0.5, Z: 0.5}})
	faces := []quat.Number{{Real: 1}, quat.Number(r3.NewRotation(math.Pi, r3.Vec{X: 1}))}
	require.NoError(Te, p.Accumulate(box.Cube(10), ref, nil, pts, nil, faces, 2))
	assert.Equal(Te, uint64(1), p.PCF()[h.Index(2, 1, 1)])
	assert.Equal(Te, uint64(1), h.At(h.Index(2, 2, 2)))
	assert.Equal(Te, uint64(2), h.Sum())
}

func TestPMFXYZPeriodicAndSelf(Te *testing.T) {
	p := newPMF(Te)
	//The minimum image of the point is at +0.5 along x, and the second point is the reference itself.
	ref := v3.FromVecs([]r3.Vec{{X: 4.75, Y: 0.5, Z: 0.5}})
	pts := v3.FromVecs([]r3.Vec{{X: -4.75, Y: 1, Z: 1}, {X: 4.75, Y: 0.5, Z: 0.5}})
	require.NoError(Te, p.Accumulate(box.Cube(10), ref, nil, pts, nil, nil, 0))
	h := p.Histogram()
	assert.Equal(Te, uint64(1), h.Sum())
	assert.Equal(Te, uint64(1), h.At(h.Index(2, 2, 2)))
}

func TestPMFXYZWorkers(Te *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 400
	vecs := make([]r3.Vec, n)
	ori := make([]quat.Number, n)
	for i := range vecs {
		vecs[i] = r3.Vec{X: (rng.Float64() - 0.5) * 12, Y: (rng.Float64() - 0.5) * 12, Z: (rng.Float64() - 0.5) * 12}
		ori[i] = quat.Number(r3.NewRotation(rng.Float64()*2*math.Pi, r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: 1}))
	}
	pts := v3.FromVecs(vecs)
	var ref []uint64
	for _, w := range []int{1, 2, 7} {
		o := freud.DefaultOptions()
		o.Workers(w)
		p := newPMF(Te, o)
		require.NoError(Te, p.Accumulate(box.Cube(12), pts, ori, pts, ori, nil, 0))
		got := append([]uint64(nil), p.PCF()...)
		if ref == nil {
			ref = got
			continue
		}
		assert.Equal(Te, ref, got, "workers %d", w)
	}
}

func TestPMFXYZErrors(Te *testing.T) {
	cases := [][6]float64{
		{2, 2, 2, 0, 4, 4},
		{2, 0, 2, 4, 4, 4},
		{2, 2, -1, 4, 4, 4},
		{2, 2, 2, 4, 1, 4},
	}
	for _, c := range cases {
		_, err := NewPMFXYZ(c[0], c[1], c[2], int(c[3]), int(c[4]), int(c[5]))
		assert.True(Te, errors.Is(err, freud.ErrConfig), "%v", c)
	}
	p := newPMF(Te)
	ref := v3.FromVecs([]r3.Vec{{}, {X: 1}})
	assert.Panics(Te, func() { p.Accumulate(box.Cube(10), ref, identity(1), ref, nil, nil, 0) })
	assert.Panics(Te, func() { p.Accumulate(box.Cube(10), ref, nil, ref, nil, identity(3), 2) })
	assert.Panics(Te, func() { p.Accumulate(box.Cube(10), nil, nil, ref, nil, nil, 0) })
}

func TestPMFXYZSnapshot(Te *testing.T) {
	p := newPMF(Te)
	ref := v3.FromVecs([]r3.Vec{{}})
	pts := v3.FromVecs([]r3.Vec{{X: 0.5, Y: -0.5, Z: 1.5}})
	require.NoError(Te, p.Accumulate(box.Cube(10), ref, nil, pts, nil, nil, 0))
	var buf bytes.Buffer
	require.NoError(Te, p.WriteSnapshot(&buf))
	h, err := histo.ReadSnapshot[uint64](&buf)
	require.NoError(Te, err)
	assert.Equal(Te, p.PCF(), h.View())
	assert.Equal(Te, uint64(1), h.At(h.Index(2, 1, 3)))
}
