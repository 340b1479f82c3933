/*
 * gocoords.go, part of freud.
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

package v3

import (
	"fmt"
	"strings"
)

//METHODS

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r

}

// SomeVecs puts in the receiver the ith vectors of matrix A,
// where i are the numbers in clist. The vectors are in the same order
// than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar {
			panic(ErrIndexOutOfRange)
		}
		F.SetVec(key, A.Vec(val))
	}
}

// SomeVecsSafe is like SomeVecs, but returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{string(e), []string{"SomeVecsSafe"}, true}
			default:
				panic(r)
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r+2)
	v = append(v, "[")
	for i := 0; i < r; i++ {
		p := F.Vec(i)
		v = append(v, fmt.Sprintf(" %6.2f %6.2f %6.2f", p.X, p.Y, p.Z))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}
