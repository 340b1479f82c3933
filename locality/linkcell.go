/*
 * linkcell.go, part of freud.
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

// Package locality finds the neighbors of a point in a periodic box,
// using a cell list.
package locality

import (
	"math"
	"sort"

	"github.com/jennyfothergill/freud"
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cell lists with more cells than this are refused, as the cell width
// is probably wrong.
const maxCells = 1 << 24

// CellIterator goes through the points in one cell.
type CellIterator interface {
	//Next returns the index of the next point in the cell, and false
	//when there are no more points.
	Next() (int, bool)
}

// SpatialIndex is the interface for the spatial indexes used by the accumulators.
// Compute must be called with the current box and points before any
// other method is used.
type SpatialIndex interface {
	Compute(b freud.Box, points *v3.Matrix) error

	//CellOf returns the cell that contains the point p
	CellOf(p r3.Vec) int

	//NeighborCells returns the cells that may contain neighbors of points in cell,
	//including cell itself. The returned slice must not be modified.
	NeighborCells(cell int) []int

	//IterCell returns a new iterator over the points in the cell.
	IterCell(cell int) CellIterator
}

// periodicer is implemented by boxes that are not periodic in every axis.
type periodicer interface {
	Periodic() [3]bool
}

// LinkCell is a cell list. The box is divided into cells whose sides are at
// least as large as the cell width given, so all the neighbors of a point
// within that cutoff are in the cell of the point or in one of the
// adjacent cells.
type LinkCell struct {
	width    float64
	box      freud.Box
	l        r3.Vec
	dims     [3]int
	periodic [3]bool
	head     []int //first point in each cell, -1 if the cell is empty
	next     []int //next point in the same cell, -1 for the last one

	neighbors [][]int
	nbdims    [3]int
	nbper     [3]bool
}

// NewLinkCell returns a new cell list with cells of, at least, the given
// width.
func NewLinkCell(width float64) (*LinkCell, error) {
	if width <= 0 || math.IsInf(width, 0) || math.IsNaN(width) {
		return nil, freud.ConfigError("locality.NewLinkCell", "The cell width must be positive and finite, got %g", width)
	}
	return &LinkCell{width: width}, nil
}

// Width returns the minimum cell width.
func (lc *LinkCell) Width() float64 {
	return lc.width
}

// Dims returns the number of cells along each axis.
func (lc *LinkCell) Dims() [3]int {
	return lc.dims
}

// NumCells returns the total number of cells.
func (lc *LinkCell) NumCells() int {
	return lc.dims[0] * lc.dims[1] * lc.dims[2]
}

// Compute bins the points into cells for the box given. It has to be called
// again whenever the box or the points change.
func (lc *LinkCell) Compute(b freud.Box, points *v3.Matrix) error {
	if points == nil {
		panic(freud.ErrNilPoints)
	}
	if b == nil {
		return freud.NewError(freud.ErrCompute, "locality.LinkCell.Compute", "Nil box")
	}
	lc.box = b
	lc.l = b.L()
	lc.periodic = [3]bool{true, true, true}
	if p, ok := b.(periodicer); ok {
		lc.periodic = p.Periodic()
	}
	ls := [3]float64{lc.l.X, lc.l.Y, lc.l.Z}
	total := 1
	for i, l := range ls {
		lc.dims[i] = 1
		if i == 2 && b.Is2D() {
			break
		}
		if n := int(l / lc.width); n > 1 {
			lc.dims[i] = n
		}
		total *= lc.dims[i]
		if total > maxCells {
			return freud.NewError(freud.ErrCompute, "locality.LinkCell.Compute", "Too many cells (%d or more) for a width of %g", total, lc.width)
		}
	}
	ncells := lc.NumCells()
	if cap(lc.head) >= ncells {
		lc.head = lc.head[:ncells]
	} else {
		lc.head = make([]int, ncells)
	}
	for i := range lc.head {
		lc.head[i] = -1
	}
	n := points.NVecs()
	if cap(lc.next) >= n {
		lc.next = lc.next[:n]
	} else {
		lc.next = make([]int, n)
	}
	for i := 0; i < n; i++ {
		c := lc.CellOf(points.Vec(i))
		lc.next[i] = lc.head[c]
		lc.head[c] = i
	}
	if lc.neighbors == nil || lc.nbdims != lc.dims || lc.nbper != lc.periodic {
		lc.buildNeighbors()
	}
	return nil
}

func (lc *LinkCell) index(x, y, z int) int {
	return x + lc.dims[0]*(y+lc.dims[1]*z)
}

// CellOf returns the cell containing p. Points outside of the box along
// non-periodic axes are assigned to the closest cell.
func (lc *LinkCell) CellOf(p r3.Vec) int {
	w := lc.box.Wrap(p)
	c := [3]int{}
	ws := [3]float64{w.X, w.Y, w.Z}
	ls := [3]float64{lc.l.X, lc.l.Y, lc.l.Z}
	for i := range c {
		if lc.dims[i] == 1 {
			continue
		}
		f := (ws[i] + ls[i]/2) / ls[i]
		ci := int(math.Floor(f * float64(lc.dims[i])))
		if ci < 0 {
			ci = 0
		} else if ci >= lc.dims[i] {
			ci = lc.dims[i] - 1
		}
		c[i] = ci
	}
	return lc.index(c[0], c[1], c[2])
}

// NeighborCells returns the cells adjacent to cell, and cell itself, without repetitions.
func (lc *LinkCell) NeighborCells(cell int) []int {
	return lc.neighbors[cell]
}

// IterCell returns an iterator over the points in cell.
func (lc *LinkCell) IterCell(cell int) CellIterator {
	return &cellIter{next: lc.next, cur: lc.head[cell]}
}

func (lc *LinkCell) buildNeighbors() {
	lc.nbdims = lc.dims
	lc.nbper = lc.periodic
	lc.neighbors = make([][]int, lc.NumCells())
	for z := 0; z < lc.dims[2]; z++ {
		for y := 0; y < lc.dims[1]; y++ {
			for x := 0; x < lc.dims[0]; x++ {
				seen := make(map[int]bool, 27)
				nb := make([]int, 0, 27)
				for dz := -1; dz <= 1; dz++ {
					nz, ok := lc.shift(z, dz, 2)
					if !ok {
						continue
					}
					for dy := -1; dy <= 1; dy++ {
						ny, ok := lc.shift(y, dy, 1)
						if !ok {
							continue
						}
						for dx := -1; dx <= 1; dx++ {
							nx, ok := lc.shift(x, dx, 0)
							if !ok {
								continue
							}
							id := lc.index(nx, ny, nz)
							if !seen[id] {
								seen[id] = true
								nb = append(nb, id)
							}
						}
					}
				}
				sort.Ints(nb)
				lc.neighbors[lc.index(x, y, z)] = nb
			}
		}
	}
}

// shift returns the cell coordinate c+d along axis, wrapped if
// the axis is periodic, and false if it falls outside the box.
func (lc *LinkCell) shift(c, d, axis int) (int, bool) {
	n := c + d
	dim := lc.dims[axis]
	if n >= 0 && n < dim {
		return n, true
	}
	if !lc.periodic[axis] {
		return 0, false
	}
	return (n + dim) % dim, true
}

type cellIter struct {
	next []int
	cur  int
}

func (it *cellIter) Next() (int, bool) {
	if it.cur < 0 {
		return -1, false
	}
	ret := it.cur
	it.cur = it.next[ret]
	return ret, true
}

var _ SpatialIndex = (*LinkCell)(nil)
