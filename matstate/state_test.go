package matstate

import (
	"strings"
	"testing"

	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/grid"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
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

func TestEncodeDecodeCoreRegularRoundTrips(t *testing.T) {
	c := tetrahedron(t)
	g := grid.AroundComplex(c, 0.25, 0.1)
	core := &Core{Complex: c, Regular: g}

	data, err := EncodeCore(core)
	require.NoError(t, err)

	decoded, err := DecodeCore(data)
	require.NoError(t, err)

	require.NotNil(t, decoded.Regular)
	assert.Equal(t, g.Shape, decoded.Regular.Shape)
	assert.Equal(t, g.Corner, decoded.Regular.Corner)
	assert.Equal(t, g.Step, decoded.Regular.Step)
	assert.Len(t, decoded.Complex.SimplicesPerDim[0], len(c.SimplicesPerDim[0]))
	assert.Len(t, decoded.Complex.SimplicesPerDim[2], len(c.SimplicesPerDim[2]))
	for i, v := range c.SimplicesPerDim[0] {
		assert.Equal(t, *v.Coords, *decoded.Complex.SimplicesPerDim[0][i].Coords)
	}
}

func TestEncodeDecodeCoreMeshRoundTrips(t *testing.T) {
	c := tetrahedron(t)
	m := &grid.Mesh{
		Points:    []geom.Vec{{0.05, 0.05, 0.05}, {0.1, 0.05, 0.05}},
		Neighbors: [][]int{{1}, {0}},
	}
	core := &Core{Complex: c, Mesh: m}

	data, err := EncodeCore(core)
	require.NoError(t, err)
	decoded, err := DecodeCore(data)
	require.NoError(t, err)

	require.NotNil(t, decoded.Mesh)
	assert.Equal(t, m.Points, decoded.Mesh.Points)
	assert.Equal(t, m.Neighbors, decoded.Mesh.Neighbors)
}

func TestEncodeDecodeVineyardsRoundTrips(t *testing.T) {
	c := tetrahedron(t)
	g := grid.NewRegular(geom.Vec{0.05, 0.05, 0.05}, 0.05, grid.Index{2, 1, 1})

	reductions, transitions, err := g.RunVineyardsInGrid(c, grid.Index{0, 0, 0}, false)
	require.NoError(t, err)

	v := &Vineyards{Reductions: reductions, Transitions: transitions}
	data, err := EncodeVineyards(v)
	require.NoError(t, err)

	decoded, err := DecodeVineyards(data)
	require.NoError(t, err)

	require.Len(t, decoded.Reductions, len(v.Reductions))
	require.Len(t, decoded.Transitions, len(v.Transitions))

	for idx, red := range v.Reductions {
		got, ok := decoded.Reductions[idx]
		require.True(t, ok)
		assertBarcodesEqual(t, red.Barcode(c), got.Barcode(c))
	}
}

func TestEncodeDecodeStateRoundTrips(t *testing.T) {
	c := tetrahedron(t)
	g := grid.NewRegular(geom.Vec{0.05, 0.05, 0.05}, 0.05, grid.Index{2, 1, 1})
	reductions, transitions, err := g.RunVineyardsInGrid(c, grid.Index{0, 0, 0}, false)
	require.NoError(t, err)

	state := &State{
		Core:      &Core{Complex: c, Regular: g},
		Vineyards: &Vineyards{Reductions: reductions, Transitions: transitions},
	}

	data, err := EncodeState(state)
	require.NoError(t, err)

	decoded, err := DecodeState(data)
	require.NoError(t, err)

	require.NotNil(t, decoded.Core.Regular)
	assert.Equal(t, g.Shape, decoded.Core.Regular.Shape)
	assert.Len(t, decoded.Vineyards.Reductions, len(reductions))
	assert.Len(t, decoded.Vineyards.Transitions, len(transitions))
}

func assertBarcodesEqual(t *testing.T, want, got []homology.BirthDeathPair) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	seen := make([]bool, len(got))
	for _, w := range want {
		found := false
		for i, g := range got {
			if seen[i] {
				continue
			}
			if g.Dim == w.Dim && g.Birth == w.Birth && g.Death == w.Death {
				seen[i] = true
				found = true
				break
			}
		}
		assert.True(t, found, "missing pair %+v", w)
	}
}
