package memstats

import (
	"strings"
	"testing"

	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/grid"
	"github.com/mars-project/medax/matstate"
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

func TestMarsMemOfReportsCounts(t *testing.T) {
	c, err := simplicial.ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)

	g := grid.NewRegular(geom.Vec{0.05, 0.05, 0.05}, 0.05, grid.Index{2, 1, 1})
	reductions, transitions, err := g.RunVineyardsInGrid(c, grid.Index{0, 0, 0}, false)
	require.NoError(t, err)

	core := &matstate.Core{Complex: c, Regular: g}
	vy := &matstate.Vineyards{Reductions: reductions, Transitions: transitions}

	m := MarsMemOf(core, vy)
	assert.Equal(t, 4, m.Complex.Vertices)
	assert.Equal(t, 6, m.Complex.Edges)
	assert.Equal(t, 4, m.Complex.Triangles)
	assert.Equal(t, "regular", m.Grid.Kind)
	assert.Equal(t, g.Volume(), m.Grid.Points)
	assert.Equal(t, 2, m.Vineyards.NumReductions)
	assert.Equal(t, 1, m.Vineyards.NumTransitions)
	assert.True(t, m.Bytes > 0)
}
