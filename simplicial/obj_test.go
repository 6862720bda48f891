package simplicial

import (
	"strings"
	"testing"

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

func TestReadOBJTetrahedron(t *testing.T) {
	c, err := ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)

	assert.Equal(t, 4, c.NumSimplicesOfDim(0))
	assert.Equal(t, 6, c.NumSimplicesOfDim(1))
	assert.Equal(t, 4, c.NumSimplicesOfDim(2))

	numVerts := int32(c.NumSimplicesOfDim(0))
	for _, e := range c.SimplicesPerDim[1] {
		for _, vi := range e.Boundary {
			assert.Less(t, vi, numVerts)
		}
	}
	numEdges := int32(c.NumSimplicesOfDim(1))
	for _, f := range c.SimplicesPerDim[2] {
		for _, ei := range f.Boundary {
			assert.Less(t, ei, numEdges)
		}
	}
}

func TestReadOBJRejectsCoincidentVertices(t *testing.T) {
	const bad = `v 0 0 0
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	_, err := ReadOBJ(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCoincidentVertices)
}

func TestReadOBJRejectsDuplicateEdges(t *testing.T) {
	const bad = `v 0 0 0
v 1 0 0
v 0 1 0
l 1 2
l 1 2
f 1 2 3
`
	_, err := ReadOBJ(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateEdge)
}

func TestWriteOBJRoundTrip(t *testing.T) {
	c, err := ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteOBJ(&buf, c))

	c2, err := ReadOBJ(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, c.NumSimplicesOfDim(0), c2.NumSimplicesOfDim(0))
	assert.Equal(t, c.NumSimplicesOfDim(2), c2.NumSimplicesOfDim(2))
}
