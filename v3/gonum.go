/*
 * gonum.go, part of freud.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//All the *Vec functions will operate/produce row vectors, since the underlying Dense is row-major.

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix is a set of vectors in 3D space. The underlying implementation is a
// gonum Dense. Within the package it is understood that a "vector" is a row vector, i.e. the
// cartesian coordinates of a point in 3D space.
type Matrix struct {
	*mat.Dense
}

// Matrix2Dense returns the Dense underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// Dense2Matrix wraps A into a Matrix. It panics if A doesn't have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// The data slice is used as the backing storage, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

// FromVecs returns a new Matrix containing a copy of the given vectors, one per row.
func FromVecs(vecs []r3.Vec) *Matrix {
	F := Zeros(len(vecs))
	for i, v := range vecs {
		F.SetVec(i, v)
	}
	return F
}

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// VecView returns a view of the given vector of the matrix.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// Vec returns a copy of the ith vector in F as an r3.Vec.
// It reads the backing slice directly, as it is used in the innermost loops.
func (F *Matrix) Vec(i int) r3.Vec {
	raw := F.RawMatrix()
	if i < 0 || i >= raw.Rows {
		panic(ErrIndexOutOfRange)
	}
	d := raw.Data[i*raw.Stride : i*raw.Stride+3]
	return r3.Vec{X: d[0], Y: d[1], Z: d[2]}
}

// SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	raw := F.RawMatrix()
	if i < 0 || i >= raw.Rows {
		panic(ErrIndexOutOfRange)
	}
	d := raw.Data[i*raw.Stride : i*raw.Stride+3]
	d[0], d[1], d[2] = v.X, v.Y, v.Z
}

// Vecs returns a new slice with copies of all the vectors in F.
func (F *Matrix) Vecs() []r3.Vec {
	n := F.NVecs()
	ret := make([]r3.Vec, n)
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

// Errors

// Error is the same as freud.Error, but avoids a circular import.
type Error struct {
	message  string
	deco     []string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("freud/v3: %s", err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical return whether the error is critical or it can be ignored
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("freud/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("freud/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("freud/v3: index out of range")
)
