package vineyard

import (
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// approxFloat treats two float64s as equal within a small tolerance, and
// treats +Inf as equal to +Inf (an essential class's death value).
var approxFloat = cmp.Comparer(func(a, b float64) bool {
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	return math.Abs(a-b) < 1e-9
})

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

func sortedBarcode(t *testing.T, bc []homology.BirthDeathPair) []homology.BirthDeathPair {
	t.Helper()
	out := append([]homology.BirthDeathPair(nil), bc...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dim != out[j].Dim {
			return out[i].Dim < out[j].Dim
		}
		if out[i].Birth != out[j].Birth {
			return out[i].Birth < out[j].Birth
		}
		return out[i].Death < out[j].Death
	})
	return out
}

// TestStepMatchesReduceFromScratch checks the vineyards invariant: taking
// one incremental Step from a valid reduction produces the same
// persistence diagram as reducing the destination key point from scratch.
func TestStepMatchesReduceFromScratch(t *testing.T) {
	c, err := simplicial.ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)

	a := geom.Vec{0.05, 0.05, 0.05}
	b := geom.Vec{0.15, 0.05, 0.05}

	redA, err := homology.ReduceFromScratch(c, a)
	require.NoError(t, err)

	stepped, swaps, err := Step(c, redA, b, false)
	require.NoError(t, err)
	assert.NotNil(t, swaps)

	fromScratchB, err := homology.ReduceFromScratch(c, b)
	require.NoError(t, err)

	got := sortedBarcode(t, stepped.Barcode(c))
	want := sortedBarcode(t, fromScratchB.Barcode(c))
	if diff := cmp.Diff(want, got, approxFloat); diff != "" {
		t.Errorf("barcode mismatch (-want +got):\n%s", diff)
	}
}

// TestStepThreePointsReportsDim1WitnessAtStepTwo reproduces the dim-1
// witness scenario: a flat three-vertex triangle, key point swept downward
// in 0.1 steps along y. Every step but index 2 — where y crosses the
// perpendicular bisector of the opposing edge — must report no swaps at
// all; step 2 must report at least one dim-1 swap.
func TestStepThreePointsReportsDim1WitnessAtStepTwo(t *testing.T) {
	const obj = `o complex
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
`
	c, err := simplicial.ReadOBJ(strings.NewReader(obj))
	require.NoError(t, err)

	start := geom.Vec{0.8, 0.75, 0}
	red, err := homology.ReduceFromScratch(c, start)
	require.NoError(t, err)

	sawDim1Witness := false
	for step := 0; step < 5; step++ {
		next := geom.Vec{0.8, 0.75 - 0.1*float64(step+1), 0}
		stepped, swaps, err := Step(c, red, next, false)
		require.NoError(t, err)

		if step == 2 {
			require.NotEmpty(t, swaps.V, "expected swaps at step index 2")
			for _, s := range swaps.V {
				if s.Dim == 1 {
					sawDim1Witness = true
				}
			}
		} else {
			assert.Empty(t, swaps.V, "expected no swaps at step index %d", step)
		}
		red = stepped
	}
	assert.True(t, sawDim1Witness, "expected a dim-1 swap at step index 2")
}

func TestStepRejectsHomBirthFirst(t *testing.T) {
	c, err := simplicial.ReadOBJ(strings.NewReader(tetrahedronOBJ))
	require.NoError(t, err)
	red, err := homology.ReduceFromScratch(c, geom.Vec{0.1, 0.1, 0.1})
	require.NoError(t, err)

	_, _, err = Step(c, red, geom.Vec{0.2, 0.1, 0.1}, true)
	assert.ErrorIs(t, err, ErrHomBirthFirstUnimplemented)
}
