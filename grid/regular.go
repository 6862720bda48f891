package grid

import (
	"math"

	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
)

// Regular is an axis-aligned lattice of query points: Shape[a] points along
// axis a, spaced Step apart starting at Corner.
type Regular struct {
	Corner geom.Vec
	Step   float64
	Shape  Index
}

// NewRegular builds a grid with the given corner, spacing and point counts
// per axis.
func NewRegular(corner geom.Vec, step float64, shape Index) *Regular {
	return &Regular{Corner: corner, Step: step, Shape: shape}
}

// AroundComplex builds a grid covering the complex's vertex bounding box
// expanded by buffer on every side, with points spaced step apart.
func AroundComplex(c *simplicial.Complex, step, buffer float64) *Regular {
	box := complexBbox(c)
	pad := geom.Vec{buffer, buffer, buffer}
	box = geom.Box{Min: box.Min.Sub(pad), Max: box.Max.Add(pad)}
	span := box.Span()
	shape := Index{
		int(math.Ceil(span.X()/step)) + 1,
		int(math.Ceil(span.Y()/step)) + 1,
		int(math.Ceil(span.Z()/step)) + 1,
	}
	return &Regular{Corner: box.Min, Step: step, Shape: shape}
}

func complexBbox(c *simplicial.Complex) geom.Box {
	verts := c.SimplicesPerDim[0]
	box := geom.Box{Min: *verts[0].Coords, Max: *verts[0].Coords}
	for _, v := range verts[1:] {
		box.Min = box.Min.Min(*v.Coords)
		box.Max = box.Max.Max(*v.Coords)
	}
	return box
}

// Coordinate returns the spatial position of a grid index.
func (g *Regular) Coordinate(i Index) geom.Vec {
	return geom.Vec{
		g.Corner.X() + float64(i.X())*g.Step,
		g.Corner.Y() + float64(i.Y())*g.Step,
		g.Corner.Z() + float64(i.Z())*g.Step,
	}
}

// Contains reports whether i addresses a point within Shape.
func (g *Regular) Contains(i Index) bool {
	for axis := 0; axis < 3; axis++ {
		if i[axis] < 0 || i[axis] >= g.Shape[axis] {
			return false
		}
	}
	return true
}

// Volume returns the total number of grid points.
func (g *Regular) Volume() int {
	return g.Shape.X() * g.Shape.Y() * g.Shape.Z()
}

// IsOnBoundary reports whether i lies on the outer face of the grid along
// any axis.
func (g *Regular) IsOnBoundary(i Index) bool {
	for axis := 0; axis < 3; axis++ {
		if i[axis] == 0 || i[axis] == g.Shape[axis]-1 {
			return true
		}
	}
	return false
}

// CenterIndex returns the grid point nearest the middle of the lattice.
func (g *Regular) CenterIndex() Index {
	return Index{g.Shape.X() / 2, g.Shape.Y() / 2, g.Shape.Z() / 2}
}

// ClosestIndexOf returns the grid index nearest p, clamped to the grid.
func (g *Regular) ClosestIndexOf(p geom.Vec) Index {
	rel := p.Sub(g.Corner)
	clamp := func(v float64, n int) int {
		i := int(math.Round(v))
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
	return Index{
		clamp(rel.X()/g.Step, g.Shape.X()),
		clamp(rel.Y()/g.Step, g.Shape.Y()),
		clamp(rel.Z()/g.Step, g.Shape.Z()),
	}
}

var neighborOffsets = [6]Index{
	{-1, 0, 0}, {1, 0, 0},
	{0, -1, 0}, {0, 1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// IterNeighbors calls f once for each of i's up-to-six axis-aligned
// neighbors that lies within the grid.
func (g *Regular) IterNeighbors(i Index, f func(Index)) {
	for _, off := range neighborOffsets {
		n := i.Add(off)
		if g.Contains(n) {
			f(n)
		}
	}
}

// NumberOfGridEdges returns the number of axis-aligned adjacencies in the
// grid graph.
func (g *Regular) NumberOfGridEdges() int {
	nx, ny, nz := g.Shape.X(), g.Shape.Y(), g.Shape.Z()
	edges := 0
	if nx > 1 {
		edges += (nx - 1) * ny * nz
	}
	if ny > 1 {
		edges += nx * (ny - 1) * nz
	}
	if nz > 1 {
		edges += nx * ny * (nz - 1)
	}
	return edges
}

// DualQuadPoints returns the four corners of the quad dual to the grid edge
// between adjacent points a and b, for drawing the patch of medial-axis
// surface: centered on their midpoint, with side Step, spanning the two axes
// perpendicular to the edge. a and b must differ along exactly one axis.
func (g *Regular) DualQuadPoints(a, b Index) [4]geom.Vec {
	axis := 0
	for d := 0; d < 3; d++ {
		if a[d] != b[d] {
			axis = d
		}
	}
	p1, p2 := (axis+1)%3, (axis+2)%3
	mid := g.Coordinate(a).Add(g.Coordinate(b)).Scale(0.5)
	half := g.Step / 2
	corner := func(s1, s2 float64) geom.Vec {
		v := mid
		v[p1] += s1 * half
		v[p2] += s2 * half
		return v
	}
	return [4]geom.Vec{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
}

// SplitWithOverlap splits the grid into two halves along its longest axis,
// each half extended by overlap points into the other's territory so a
// caller running independent vineyards walks on each half can reconcile
// results in the shared band. It returns both halves and the axis split on.
func (g *Regular) SplitWithOverlap(overlap int) (lower, upper *Regular, axis int) {
	axis = 0
	for d := 1; d < 3; d++ {
		if g.Shape[d] > g.Shape[axis] {
			axis = d
		}
	}
	mid := g.Shape[axis] / 2

	lowerShape := g.Shape
	lowerShape[axis] = mid + overlap
	lower = &Regular{Corner: g.Corner, Step: g.Step, Shape: lowerShape}

	upperShape := g.Shape
	upperShape[axis] = g.Shape[axis] - mid + overlap
	upperOffset := Index{}
	upperOffset[axis] = mid - overlap
	upperCorner := g.Corner.Add(geom.Vec{
		float64(upperOffset.X()) * g.Step,
		float64(upperOffset.Y()) * g.Step,
		float64(upperOffset.Z()) * g.Step,
	})
	upper = &Regular{Corner: upperCorner, Step: g.Step, Shape: upperShape}

	return lower, upper, axis
}

// VisitEdges walks the grid graph breadth-first from start, calling f once
// for every grid edge reachable from start, with prev an already-reached
// cell and next its neighbor across that edge.
func (g *Regular) VisitEdges(start Index, f func(next, prev Index)) {
	visited := map[Index]bool{start: true}
	done := map[Index]bool{}
	queue := []Index{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		done[cur] = true
		g.IterNeighbors(cur, func(n Index) {
			if done[n] {
				return
			}
			f(n, cur)
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		})
	}
}

// RunVineyardsInGrid walks the grid breadth-first from start, seeding start
// with a from-scratch Reduction and stepping vineyards across every grid
// edge. It returns every visited cell's Reduction (the one from the first
// edge that reached it) and one transition per grid edge, in walk order.
func (g *Regular) RunVineyardsInGrid(c *simplicial.Complex, start Index, requireHomBirthToBeFirst bool) (map[Index]*homology.Reduction, []Transition, error) {
	reductions := make(map[Index]*homology.Reduction)
	startRed, err := homology.ReduceFromScratch(c, g.Coordinate(start))
	if err != nil {
		return nil, nil, err
	}
	reductions[start] = startRed

	var transitions []Transition
	var walkErr error
	g.VisitEdges(start, func(next, prev Index) {
		if walkErr != nil {
			return
		}
		red, swaps, err := vineyard.Step(c, reductions[prev], g.Coordinate(next), requireHomBirthToBeFirst)
		if err != nil {
			walkErr = err
			return
		}
		if _, seen := reductions[next]; !seen {
			reductions[next] = red
		}
		transitions = append(transitions, Transition{From: prev, To: next, Swaps: swaps})
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return reductions, transitions, nil
}
