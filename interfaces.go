/*
 * interfaces.go, part of freud.
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

package freud

import (
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is the interface for a periodic simulation cell. The box can change from
// one frame to the next, so accumulators take it in every call and should not keep it.
type Box interface {

	//Wrap returns the minimum image of the vector v.
	Wrap(v r3.Vec) r3.Vec

	//Volume returns the volume of the box, or its area for a 2D box
	Volume() float64

	//L returns the side lengths of the box. The Z component is
	//meaningless for 2D boxes.
	L() r3.Vec

	//Is2D returns true if the box is 2-dimensional.
	Is2D() bool

	//AllDistances puts in dst, and returns, the minimum-image distances between every
	//point in a (rows) and every point in b (columns). If dst is nil or doesn't have the
	//right dimensions, a new matrix is allocated.
	AllDistances(a, b *v3.Matrix, dst *mat.Dense) *mat.Dense
}

//Errors

// Decorator is implemented by errors that can carry the trail of functions they
// went through. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Decorator interface {
	Error() string
	Decorate(string) []string //If passed an empty string, it just returns the current value.
	Critical() bool
}
