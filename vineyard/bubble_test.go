package vineyard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTranspositions(t *testing.T) {
	at, _ := ComputeTranspositions([]int32{0, 1, 4, 3, 2, 5})
	assert.Equal(t, []int32{2, 3, 2}, at)

	at, _ = ComputeTranspositions([]int32{3, 4, 5, 2, 0, 1})
	assert.Equal(t, []int32{2, 3, 4, 1, 2, 3, 0, 1, 2, 0, 1}, at)

	at, _ = ComputeTranspositions([]int32{0, 1, 2, 4, 5, 6, 7, 3, 8, 9, 10, 11})
	assert.Equal(t, []int32{6, 5, 4, 3}, at)
}

func TestComputeTranspositionsOfIdentityIsEmpty(t *testing.T) {
	at, swapped := ComputeTranspositions([]int32{0, 1, 2, 3})
	assert.Empty(t, at)
	assert.Empty(t, swapped)
}
