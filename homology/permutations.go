package homology

import (
	"github.com/mars-project/medax/bitmat"
	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/simplicial"
)

// ComputePermutations returns, per dimension, the permutation that sorts a
// complex's simplices by squared distance to keyPoint. Each permutation's
// forwards map takes a filtration position to the canonical (insertion) id
// of the simplex occupying that position.
func ComputePermutations(c *simplicial.Complex, keyPoint geom.Vec) (vertex, edge, triangle *bitmat.Permutation) {
	vd, ed, td := c.DistancesTo([3]float64{keyPoint.X(), keyPoint.Y(), keyPoint.Z()})

	byValue := func(d []float64) *bitmat.Permutation {
		return bitmat.FromOrd(d, func(a, b float64) bool { return a < b })
	}

	vertex = byValue(vd)
	edge = byValue(ed)
	triangle = byValue(td)
	return
}
