/*
 * box.go, part of freud.
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

// Package box contains an orthorhombic simulation box, periodic in any
// subset of its axes, that implements freud.Box.
// The box is centered at the origin, so positions inside it are in [-L/2, L/2).
package box

import (
	"fmt"
	"math"

	"github.com/jennyfothergill/freud"
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an orthorhombic periodic box.
type Box struct {
	l        r3.Vec
	is2D     bool
	periodic [3]bool
}

// New returns a box with the given side lengths, periodic in all its axes.
// If is2D is true, lz is ignored. All the used lengths must be positive.
func New(lx, ly, lz float64, is2D bool) (*Box, error) {
	if is2D {
		lz = 0
	}
	if lx <= 0 || ly <= 0 || (!is2D && lz <= 0) {
		return nil, freud.ConfigError("box.New", "Box lengths must be positive, got %g, %g, %g", lx, ly, lz)
	}
	ret := &Box{l: r3.Vec{X: lx, Y: ly, Z: lz}, is2D: is2D, periodic: [3]bool{true, true, !is2D}}
	return ret, nil
}

// Cube returns a cubic 3D box of side l. It panics if l is not positive.
func Cube(l float64) *Box {
	b, err := New(l, l, l, false)
	if err != nil {
		panic(err.Error())
	}
	return b
}

// Square returns a square 2D box of side l. It panics if l is not positive.
func Square(l float64) *Box {
	b, err := New(l, l, 0, true)
	if err != nil {
		panic(err.Error())
	}
	return b
}

// L returns the side lengths of the box.
func (B *Box) L() r3.Vec {
	return B.l
}

// Is2D returns true if the box is 2-dimensional
func (B *Box) Is2D() bool {
	return B.is2D
}

// Volume returns the volume of the box, or its area if the box is 2D.
func (B *Box) Volume() float64 {
	if B.is2D {
		return B.l.X * B.l.Y
	}
	return B.l.X * B.l.Y * B.l.Z
}

// Periodic returns whether the box is periodic along each of the axes.
func (B *Box) Periodic() [3]bool {
	return B.periodic
}

// SetPeriodic sets the periodicity of each axis. The z axis of a 2D box
// is never periodic.
func (B *Box) SetPeriodic(x, y, z bool) {
	B.periodic = [3]bool{x, y, z && !B.is2D}
}

// Wrap returns the minimum image of v. Along periodic axes the result lies
// in [-L/2, L/2]. In a 2D box, the z component is set to zero.
func (B *Box) Wrap(v r3.Vec) r3.Vec {
	if B.periodic[0] {
		v.X -= B.l.X * math.Round(v.X/B.l.X)
	}
	if B.periodic[1] {
		v.Y -= B.l.Y * math.Round(v.Y/B.l.Y)
	}
	if B.is2D {
		v.Z = 0
	} else if B.periodic[2] {
		v.Z -= B.l.Z * math.Round(v.Z/B.l.Z)
	}
	return v
}

// AllDistances puts in dst, and returns, the minimum-image distances between
// every point in a (rows) and every point in b (columns). If dst is nil or doesn't
// have the right dimensions, a new matrix is allocated.
func (B *Box) AllDistances(a, b *v3.Matrix, dst *mat.Dense) *mat.Dense {
	if a == nil || b == nil {
		panic(freud.ErrNilPoints)
	}
	na, nb := a.NVecs(), b.NVecs()
	if dst == nil {
		dst = mat.NewDense(na, nb, nil)
	} else if r, c := dst.Dims(); r != na || c != nb {
		dst = mat.NewDense(na, nb, nil)
	}
	bv := b.Vecs()
	raw := dst.RawMatrix()
	for i := 0; i < na; i++ {
		p := a.Vec(i)
		row := raw.Data[i*raw.Stride : i*raw.Stride+nb]
		for j, q := range bv {
			row[j] = r3.Norm(B.Wrap(r3.Sub(q, p)))
		}
	}
	return dst
}

func (B *Box) String() string {
	if B.is2D {
		return fmt.Sprintf("Box 2D Lx: %g Ly: %g periodic: %v", B.l.X, B.l.Y, B.periodic)
	}
	return fmt.Sprintf("Box Lx: %g Ly: %g Lz: %g periodic: %v", B.l.X, B.l.Y, B.l.Z, B.periodic)
}

var _ freud.Box = (*Box)(nil)
