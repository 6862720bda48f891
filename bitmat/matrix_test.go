package bitmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColAddMod2(t *testing.T) {
	c1 := col{1, 2, 3, 4, 5}
	c2 := col{2, 4, 6, 8, 10}
	c3 := col{1, 3, 5, 7, 9}

	assert.Equal(t, col{1, 3, 5, 6, 8, 10}, c1.addMod2(c2))
	assert.Equal(t, col{1, 3, 5, 6, 8, 10}, c2.addMod2(c1))
	assert.Equal(t, col{2, 4, 7, 9}, c1.addMod2(c3))
	assert.Equal(t, col{2, 4, 7, 9}, c3.addMod2(c1))
	assert.Equal(t, col{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, c2.addMod2(c3))
	assert.Equal(t, col{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, c3.addMod2(c2))
}

func TestMatrixSwapColsAndRows(t *testing.T) {
	m := NewSparse(3, 3)
	m.Set(1, 1, true)
	m.SwapColsAndRows(0, 1)
	m.AddCols(1, 0)
	m.AddCols(2, 0)
	assert.True(t, m.Get(0, 0))
	assert.True(t, m.Get(0, 1))
	assert.True(t, m.Get(0, 2))

	m = NewSparse(3, 3)
	m.Set(1, 1, true)
	m.SwapCols(0, 1)
	m.AddCols(1, 0)
	m.AddCols(2, 0)
	assert.True(t, m.Get(1, 0))
	assert.True(t, m.Get(1, 1))
	assert.True(t, m.Get(1, 2))

	m = NewSparse(3, 3)
	m.Set(1, 1, true)
	m.SwapRows(1, 0)
	m.AddCols(0, 1)
	m.AddCols(2, 0)
	assert.True(t, m.Get(0, 0))
	assert.True(t, m.Get(0, 1))
	assert.True(t, m.Get(0, 2))
}

func TestMatrixSwapRowsChain(t *testing.T) {
	m := NewSparse(6, 1)
	m.Set(0, 0, true)

	m.SwapRows(0, 1)
	assert.True(t, m.Get(1, 0))
	m.SwapRows(0, 2)
	assert.True(t, m.Get(1, 0))
	m.SwapRows(2, 1)
	assert.True(t, m.Get(2, 0))
	m.SwapRows(2, 3)
	assert.True(t, m.Get(3, 0))
	m.SwapRows(0, 3)
	assert.True(t, m.Get(0, 0))
	m.SwapRows(1, 4)
	assert.True(t, m.Get(0, 0))
	m.SwapRows(0, 4)
	assert.True(t, m.Get(4, 0))
}

func TestMatrixBakeInPermutationsPreservesLogicalView(t *testing.T) {
	m := NewSparse(6, 1)
	m.Set(0, 0, true)
	m.SwapRows(0, 1)
	m.SwapRows(0, 2)
	m.SwapRows(2, 1)
	m.SwapRows(2, 3)
	m.SwapRows(0, 3)
	m.SwapRows(1, 4)
	m.SwapRows(0, 4)

	baked := m.Clone()
	baked.BakeInPermutations()

	for r := int32(0); r < 6; r++ {
		assert.Equal(t, m.Get(r, 0), baked.Get(r, 0))
	}
}

func TestMatrixReduce(t *testing.T) {
	m := FromPairs(3, 3, [][2]int32{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 0}, {2, 2}})
	m.Reduce()
	reduced := FromPairs(3, 3, [][2]int32{{0, 0}, {0, 1}, {1, 1}, {2, 0}})
	assert.ElementsMatch(t, reduced.ToPairs(), m.ToPairs())
}

func TestMatrixColMax(t *testing.T) {
	m := Eye(4)
	for i := int32(0); i < 4; i++ {
		r, ok := m.ColMax(i)
		require.True(t, ok)
		assert.Equal(t, i, r)
	}
	m.AddCols(0, 1)
	m.AddCols(2, 0)
	m.AddCols(1, 3)

	r, _ := m.ColMax(0)
	assert.Equal(t, int32(1), r)
	r, _ = m.ColMax(1)
	assert.Equal(t, int32(3), r)
	r, _ = m.ColMax(2)
	assert.Equal(t, int32(2), r)
	r, _ = m.ColMax(3)
	assert.Equal(t, int32(3), r)
}

func TestMatrixInverseGaussJordanRoundTrips(t *testing.T) {
	m := NewSparse(3, 3)
	m.Set(0, 1, true)
	m.Set(0, 2, true)
	m.Set(1, 0, true)
	m.Set(1, 1, true)
	m.Set(2, 1, true)

	inv := m.Clone().InverseGaussJordan()

	// m * inv == I: for every column c of inv, A(inv_col) should be the c-th
	// standard basis vector.
	for c := int32(0); c < 3; c++ {
		var product [3]bool
		for k := int32(0); k < 3; k++ {
			if !inv.Get(k, c) {
				continue
			}
			for r := int32(0); r < 3; r++ {
				if m.Get(r, k) {
					product[r] = !product[r]
				}
			}
		}
		for r := int32(0); r < 3; r++ {
			assert.Equal(t, r == c, product[r], "row %d col %d", r, c)
		}
	}
}

func TestDenseMatrixMatchesSparse(t *testing.T) {
	pairs := [][2]int32{{0, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 0}, {2, 2}}
	sparse := FromPairs(3, 3, pairs)
	dense := &Matrix{core: denseBackingFromPairs(3, 3, pairs)}

	sparse.Reduce()
	dense.Reduce()

	assert.ElementsMatch(t, sparse.ToPairs(), dense.ToPairs())
}
