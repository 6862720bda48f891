// Package simplicial holds the simplicial complex model — vertices, edges
// and triangles over a fixed filtration-relevant key point — plus its OBJ
// serialization.
package simplicial

import "github.com/mars-project/medax/geom"

// Simplex is a single cell of a complex: a dimension-local identifier, the
// optional coordinates of a vertex, and the boundary face ids one dimension
// down.
type Simplex struct {
	ID       int32
	Coords   *geom.Vec
	Boundary []int32
}

// Dim returns the dimension of the simplex: len(Boundary)-1, so a vertex's
// length-1 sentinel boundary reports dimension 0.
func (s *Simplex) Dim() int {
	return len(s.Boundary) - 1
}

// CenterPoint returns the centroid of the simplex: its own coordinates for
// a vertex, the edge midpoint, or the mean of the three edge centroids for a
// triangle.
func (s *Simplex) CenterPoint(c *Complex) geom.Vec {
	switch s.Dim() {
	case 0:
		return *s.Coords
	case 1:
		a := c.SimplicesPerDim[0][s.Boundary[0]]
		b := c.SimplicesPerDim[0][s.Boundary[1]]
		return a.Coords.Add(*b.Coords).Scale(0.5)
	case 2:
		a := c.SimplicesPerDim[1][s.Boundary[0]]
		b := c.SimplicesPerDim[1][s.Boundary[1]]
		c2 := c.SimplicesPerDim[1][s.Boundary[2]]
		sum := a.CenterPoint(c).Add(b.CenterPoint(c)).Add(c2.CenterPoint(c))
		return sum.Scale(1.0 / 3.0)
	default:
		panic("simplicial: center point undefined for this dimension")
	}
}
