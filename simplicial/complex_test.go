package simplicial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tetrahedron(t *testing.T) *Complex {
	t.Helper()
	c, err := ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)
	return c
}

// TestBoundaryMatrixSquaresToZero checks the fundamental simplicial-complex
// invariant ∂∂ = 0 over GF(2): composing the dim-1 and dim-2 boundary maps
// must annihilate every triangle.
func TestBoundaryMatrixSquaresToZero(t *testing.T) {
	c := tetrahedron(t)

	b1, err := c.BoundaryMatrix(1)
	require.NoError(t, err)
	b2, err := c.BoundaryMatrix(2)
	require.NoError(t, err)

	for tri := int32(0); tri < int32(c.NumSimplicesOfDim(2)); tri++ {
		var parity [4]bool // vertex parity after composing through edges
		for e := int32(0); e < int32(c.NumSimplicesOfDim(1)); e++ {
			if !b2.Get(e, tri) {
				continue
			}
			for v := int32(0); v < int32(c.NumSimplicesOfDim(0)); v++ {
				if b1.Get(v, e) {
					parity[v] = !parity[v]
				}
			}
		}
		for v, p := range parity {
			assert.False(t, p, "triangle %d: vertex %d parity should cancel", tri, v)
		}
	}
}

func TestDistancesToIsMonotonic(t *testing.T) {
	c := tetrahedron(t)
	vertex, edge, triangle := c.DistancesTo([3]float64{0.1, 0.1, 0.1})

	for i, e := range c.SimplicesPerDim[1] {
		assert.GreaterOrEqual(t, edge[i], vertex[e.Boundary[0]])
		assert.GreaterOrEqual(t, edge[i], vertex[e.Boundary[1]])
	}
	for i, f := range c.SimplicesPerDim[2] {
		for _, ei := range f.Boundary {
			assert.GreaterOrEqual(t, triangle[i], edge[ei])
		}
	}
}

func TestCenterPointOfVertexIsItself(t *testing.T) {
	c := tetrahedron(t)
	v := &c.SimplicesPerDim[0][0]
	assert.Equal(t, *v.Coords, v.CenterPoint(c))
}

func TestTriangleIndicesAreSortedAndDistinct(t *testing.T) {
	c := tetrahedron(t)
	for _, tri := range c.TriangleIndices() {
		assert.Less(t, tri[0], tri[1])
		assert.Less(t, tri[1], tri[2])
	}
}
