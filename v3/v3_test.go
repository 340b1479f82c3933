package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewMatrix(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	assert.Equal(Te, r3.Vec{X: 4, Y: 5, Z: 6}, A.Vec(1))
	//views share the storage
	View := A.VecView(1)
	View.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.Vec(1).X)

	_, err = NewMatrix([]float64{1, 2})
	assert.Error(Te, err)
}

func TestSetVecAndFromVecs(Te *testing.T) {
	vecs := []r3.Vec{{X: 1}, {Y: 2}, {Z: 3}}
	F := FromVecs(vecs)
	assert.Equal(Te, vecs, F.Vecs())
	F.SetVec(0, r3.Vec{X: -1, Y: -1, Z: -1})
	assert.Equal(Te, -1.0, F.At(0, 2))
	assert.Panics(Te, func() { F.Vec(3) })
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	B := Zeros(3)
	B.SomeVecs(A, []int{1, 3, 5})
	assert.Equal(Te, r3.Vec{X: 16, Y: 17, Z: 18}, B.Vec(2))
	C := Zeros(2) //We should cause an error with this.
	err = C.SomeVecsSafe(A, []int{1, 3, 5})
	assert.Error(Te, err)
}
