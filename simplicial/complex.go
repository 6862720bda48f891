package simplicial

import (
	"math"

	"github.com/mars-project/medax/bitmat"
)

// Complex is a simplicial complex of dimension at most 2, stored as one
// dense, id-indexed simplex array per dimension.
type Complex struct {
	SimplicesPerDim [3][]Simplex
}

// NumSimplicesOfDim returns the number of simplices of the given dimension.
// dim == -1 is the conventional "empty simplex" and always reports 1.
func (c *Complex) NumSimplicesOfDim(dim int) int {
	if dim == -1 {
		return 1
	}
	return len(c.SimplicesPerDim[dim])
}

// BoundaryMatrix returns the GF(2) boundary map from dimension dim to
// dim-1, as an (m x n) matrix where m = NumSimplicesOfDim(dim-1) and n =
// NumSimplicesOfDim(dim).
func (c *Complex) BoundaryMatrix(dim int) (*bitmat.Matrix, error) {
	n := c.NumSimplicesOfDim(dim)
	m := c.NumSimplicesOfDim(dim - 1)
	if n >= math.MaxInt32 {
		return nil, &TooManySimplicesError{Dim: dim, Count: n}
	}
	if m >= math.MaxInt32 {
		return nil, &TooManySimplicesError{Dim: dim - 1, Count: m}
	}

	bm := bitmat.NewSparse(int32(m), int32(n))
	for _, s := range c.SimplicesPerDim[dim] {
		for _, j := range s.Boundary {
			bm.Set(j, s.ID, true)
		}
	}
	return bm, nil
}

// TriangleIndices returns, for each triangle, its three vertex ids in
// ascending order. Any edge-ordering information in the triangle's boundary
// is lost.
func (c *Complex) TriangleIndices() [][3]int32 {
	tris := make([][3]int32, 0, len(c.SimplicesPerDim[2]))
	for _, t := range c.SimplicesPerDim[2] {
		seen := map[int32]struct{}{}
		for _, ei := range t.Boundary {
			e := c.SimplicesPerDim[1][ei]
			seen[e.Boundary[0]] = struct{}{}
			seen[e.Boundary[1]] = struct{}{}
		}
		if len(seen) != 3 {
			panic("simplicial: a triangle should have exactly three vertices")
		}
		var v [3]int32
		i := 0
		for id := range seen {
			v[i] = id
			i++
		}
		if v[0] > v[1] {
			v[0], v[1] = v[1], v[0]
		}
		if v[1] > v[2] {
			v[1], v[2] = v[2], v[1]
		}
		if v[0] > v[1] {
			v[0], v[1] = v[1], v[0]
		}
		tris = append(tris, v)
	}
	return tris
}

// DistancesTo returns, per dimension, the squared-distance-to-key_point
// filtration value of every simplex: a vertex's own squared distance, and
// every higher simplex's max over its boundary.
func (c *Complex) DistancesTo(keyPoint [3]float64) (vertex, edge, triangle []float64) {
	vertex = make([]float64, len(c.SimplicesPerDim[0]))
	for i, v := range c.SimplicesPerDim[0] {
		vertex[i] = sqDist(*v.Coords, keyPoint)
	}

	edge = make([]float64, len(c.SimplicesPerDim[1]))
	for i, e := range c.SimplicesPerDim[1] {
		edge[i] = math.Max(vertex[e.Boundary[0]], vertex[e.Boundary[1]])
	}

	triangle = make([]float64, len(c.SimplicesPerDim[2]))
	for i, f := range c.SimplicesPerDim[2] {
		triangle[i] = math.Max(edge[f.Boundary[0]], math.Max(edge[f.Boundary[1]], edge[f.Boundary[2]]))
	}
	return
}

func sqDist(a [3]float64, b [3]float64) float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// SimplexEnteringValue computes the filtration value of a single simplex by
// recursing through its boundary, for callers that don't want to compute
// the whole DistancesTo table.
func (c *Complex) SimplexEnteringValue(dim int, id int32, keyPoint [3]float64) float64 {
	s := &c.SimplicesPerDim[dim][id]
	if dim == 0 {
		return sqDist(*s.Coords, keyPoint)
	}
	best := math.Inf(-1)
	for _, b := range s.Boundary {
		v := c.SimplexEnteringValue(dim-1, b, keyPoint)
		if v > best {
			best = v
		}
	}
	return best
}
