package prune

import (
	"strings"
	"testing"

	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetrahedronOBJ = `o complex
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3
f 1 2 4
f 1 3 4
f 2 3 4
`

func tetrahedron(t *testing.T) *simplicial.Complex {
	t.Helper()
	c, err := simplicial.ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)
	return c
}

func TestCommonFaceDropsAdjacentEdges(t *testing.T) {
	c := tetrahedron(t)
	// Every pair of edges in a tetrahedron shares a vertex or not; pick one
	// known-adjacent pair (the first pair sharing a vertex) and one
	// known-disjoint pair.
	var adjacent, disjoint vineyard.Swap
	found := 0
	for i, e1 := range c.SimplicesPerDim[1] {
		for j, e2 := range c.SimplicesPerDim[1] {
			if i >= j {
				continue
			}
			shared := e1.Boundary[0] == e2.Boundary[0] || e1.Boundary[0] == e2.Boundary[1] ||
				e1.Boundary[1] == e2.Boundary[0] || e1.Boundary[1] == e2.Boundary[1]
			if shared && found == 0 {
				adjacent = vineyard.Swap{Dim: 1, I: int32(i), J: int32(j)}
				found++
			}
			if !shared && found == 1 {
				disjoint = vineyard.Swap{Dim: 1, I: int32(i), J: int32(j)}
				found++
			}
		}
	}
	require.Equal(t, 2, found)

	swaps := &vineyard.Swaps{V: []vineyard.Swap{adjacent, disjoint}}
	pruned := CommonFace(swaps, c)
	assert.Len(t, pruned.V, 1)
	assert.Equal(t, disjoint, pruned.V[0])
}

func TestEuclideanKeepsFarApartSwaps(t *testing.T) {
	c := tetrahedron(t)
	swap := vineyard.Swap{Dim: 0, I: 0, J: 1}
	swaps := &vineyard.Swaps{V: []vineyard.Swap{swap}}

	assert.Empty(t, Euclidean(swaps, c, 10.0).V)
	assert.Len(t, Euclidean(swaps, c, 0.0).V, 1)
}

func TestApplyDoesNotSquareEuclideanDistanceTwice(t *testing.T) {
	// Two vertices with squared distance exactly 0.3.
	c, err := simplicial.ReadOBJ(strings.NewReader("v 0 0 0\nv 0.5477225575051661 0 0\n"))
	require.NoError(t, err)
	swaps := &vineyard.Swaps{V: []vineyard.Swap{{Dim: 0, I: 0, J: 1}}}

	threshold := 0.5
	param := Param{Euclidean: true, EuclideanDistance: &threshold}

	// Param.EuclideanDistance is already a squared-distance cutoff (per
	// spec.md §6 and the source's prune_euclidian): 0.3 <= 0.5 must drop the
	// swap. Squaring the threshold again before calling Euclidean would
	// compare against 0.25 instead and wrongly keep it.
	pruned := Apply(swaps, c, param, nil, nil)
	assert.Empty(t, pruned.V)
}

func TestDefaultParamsShape(t *testing.T) {
	params := DefaultParams()
	assert.True(t, params[0].Coface)
	assert.False(t, params[0].Face)
	assert.True(t, params[1].Face)
	assert.True(t, params[1].Persistence)
	require.NotNil(t, params[1].PersistenceThreshold)
	assert.Equal(t, 0.01, *params[1].PersistenceThreshold)
}
