package locality

import "gonum.org/v1/gonum/spatial/r3"

// Neighbors enumerates the candidate neighbors of a point with a spatial index.
// It doesn't filter the candidates by distance, which is left to the caller.
type Neighbors struct {
	index SpatialIndex
}

// NewNeighbors returns a Neighbors using index, which must already be computed.
func NewNeighbors(index SpatialIndex) *Neighbors {
	return &Neighbors{index: index}
}

// Of returns a new iterator over the candidate neighbors of p.
// The iterator is safe to use from one goroutine while other goroutines use
// their own iterators.
func (n *Neighbors) Of(p r3.Vec) *NeighborIterator {
	cells := n.index.NeighborCells(n.index.CellOf(p))
	return &NeighborIterator{index: n.index, cells: cells, ci: -1}
}

// NeighborIterator goes through the points in all the cells neighboring
// one point. Each point is returned once.
type NeighborIterator struct {
	index SpatialIndex
	cells []int
	ci    int
	cur   CellIterator
}

// Next returns the index of the next candidate, or false if there are no more.
func (it *NeighborIterator) Next() (int, bool) {
	for {
		if it.cur != nil {
			if j, ok := it.cur.Next(); ok {
				return j, true
			}
		}
		it.ci++
		if it.ci >= len(it.cells) {
			it.cur = nil
			return -1, false
		}
		it.cur = it.index.IterCell(it.cells[it.ci])
	}
}
