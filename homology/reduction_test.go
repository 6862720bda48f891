package homology

import (
	"math"
	"strings"
	"testing"

	"github.com/mars-project/medax/geom"
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

// TestReduceFromScratchBettiNumbersOfSphere checks that the boundary of a
// tetrahedron, a closed topological sphere, has Betti numbers (1, 0, 1)
// regardless of which vertex is used as the query point.
func TestReduceFromScratchBettiNumbersOfSphere(t *testing.T) {
	c := tetrahedron(t)

	for _, v := range c.SimplicesPerDim[0] {
		red, err := ReduceFromScratch(c, *v.Coords)
		require.NoError(t, err)

		betti := red.BettiNumbers(c)
		assert.Equal(t, [3]int{1, 0, 1}, betti)
	}
}

func TestReduceFromScratchBarcodeHasNoNegativeLifetimes(t *testing.T) {
	c := tetrahedron(t)
	red, err := ReduceFromScratch(c, geom.Vec{0.2, 0.2, 0.2})
	require.NoError(t, err)

	for _, p := range red.Barcode(c) {
		assert.GreaterOrEqual(t, p.Lifetime(), 0.0)
		if !math.IsInf(p.Death, 1) {
			assert.LessOrEqual(t, p.Birth, p.Death)
		}
	}
}

func TestFindKillerIsConsistentWithPersistence(t *testing.T) {
	c := tetrahedron(t)
	red, err := ReduceFromScratch(c, geom.Vec{0.2, 0.2, 0.2})
	require.NoError(t, err)

	for id := range c.SimplicesPerDim[0] {
		p, ok := red.Persistence(c, 0, int32(id))
		if !ok {
			continue
		}
		_, hasKiller := red.FindKiller(int32(id), 0)
		assert.Equal(t, !math.IsInf(p.Death, 1), hasKiller)
	}
}
