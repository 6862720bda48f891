package grid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
)

// Mesh is a grid of query points given explicitly, by position and
// neighbor adjacency, rather than implied by a lattice shape. It exists for
// query grids read from a file instead of generated, e.g. the vertices and
// edges of a sampled surface.
type Mesh struct {
	Points    []geom.Vec
	Neighbors [][]int
	// DimDist is the inferred per-axis spacing between neighboring points,
	// used by DualQuadPoints; nil until RecomputeDimDist succeeds.
	DimDist *[3]float64
}

// EmptyMesh returns a mesh with no points.
func EmptyMesh() *Mesh {
	return &Mesh{}
}

// Coordinate returns the position of the point addressed by i.
func (m *Mesh) Coordinate(i Index) geom.Vec {
	return m.Points[i.X()]
}

// BBoxWithoutSingletons returns the bounding box of every point that has at
// least one neighbor, ignoring isolated points left over from a split.
func (m *Mesh) BBoxWithoutSingletons() geom.Box {
	var box geom.Box
	first := true
	for i, neigh := range m.Neighbors {
		if len(neigh) == 0 {
			continue
		}
		p := m.Points[i]
		if first {
			box = geom.Box{Min: p, Max: p}
			first = false
			continue
		}
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

func (m *Mesh) dimDist() [3]float64 {
	if m.DimDist != nil {
		return *m.DimDist
	}
	return [3]float64{1, 1, 1}
}

// DualQuadPoints returns the four corners of the quad dual to the grid edge
// between points a and b: centered on their midpoint, spanning the two axes
// perpendicular to the edge by DimDist (or a unit span if unknown).
func (m *Mesh) DualQuadPoints(a, b Index) [4]geom.Vec {
	pa, pb := m.Points[a.X()], m.Points[b.X()]
	mid := pa.Add(pb).Scale(0.5)
	diff := pb.Sub(pa)

	axis := 0
	for d := 1; d < 3; d++ {
		if math.Abs(diff[d]) > math.Abs(diff[axis]) {
			axis = d
		}
	}
	p1, p2 := (axis+1)%3, (axis+2)%3
	dd := m.dimDist()
	half1, half2 := dd[p1]/2, dd[p2]/2

	corner := func(s1, s2 float64) geom.Vec {
		v := mid
		v[p1] += s1 * half1
		v[p2] += s2 * half2
		return v
	}
	return [4]geom.Vec{corner(-1, -1), corner(1, -1), corner(1, 1), corner(-1, 1)}
}

// SplitInHalf partitions the mesh's edges along the widest axis of its
// bounding box into two sub-meshes sharing the same point set: edges
// entirely on one side of the midpoint go to that side's mesh, edges
// straddling it are dropped from both. A caller that runs vineyards
// independently on each half and wants the dropped edges too must walk
// them separately.
func (m *Mesh) SplitInHalf() (lower, upper *Mesh) {
	box := m.BBoxWithoutSingletons()
	span := box.Span()
	axis := 0
	if span.Y() > span[axis] {
		axis = 1
	}
	if span.Z() > span[axis] {
		axis = 2
	}
	mid := box.Mid()[axis]

	lower = &Mesh{Points: m.Points, Neighbors: make([][]int, len(m.Points)), DimDist: m.DimDist}
	upper = &Mesh{Points: m.Points, Neighbors: make([][]int, len(m.Points)), DimDist: m.DimDist}

	for i, neigh := range m.Neighbors {
		iLower := m.Points[i][axis] < mid
		for _, j := range neigh {
			jLower := m.Points[j][axis] < mid
			switch {
			case iLower && jLower:
				lower.Neighbors[i] = append(lower.Neighbors[i], j)
			case !iLower && !jLower:
				upper.Neighbors[i] = append(upper.Neighbors[i], j)
			}
		}
	}
	return lower, upper
}

// RunVineyards walks every connected component of the mesh depth-first,
// seeding each component's first point with a from-scratch Reduction and
// stepping vineyards across every traversed edge. It returns every visited
// point's Reduction, keyed by FakeIndex of its slice position, and the
// ordered transitions taken.
func (m *Mesh) RunVineyards(c *simplicial.Complex, requireHomBirthToBeFirst bool) (map[Index]*homology.Reduction, []Transition, error) {
	reductions := make(map[Index]*homology.Reduction)
	var transitions []Transition
	visited := make([]bool, len(m.Points))

	for start := range m.Points {
		if visited[start] {
			continue
		}
		visited[start] = true
		startRed, err := homology.ReduceFromScratch(c, m.Points[start])
		if err != nil {
			return nil, nil, err
		}
		reductions[FakeIndex(start)] = startRed

		stack := []int{start}
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range m.Neighbors[cur] {
				if visited[n] {
					continue
				}
				visited[n] = true
				red, swaps, err := vineyard.Step(c, reductions[FakeIndex(cur)], m.Points[n], requireHomBirthToBeFirst)
				if err != nil {
					return nil, nil, err
				}
				reductions[FakeIndex(n)] = red
				transitions = append(transitions, Transition{From: FakeIndex(cur), To: FakeIndex(n), Swaps: swaps})
				stack = append(stack, n)
			}
		}
	}
	return reductions, transitions, nil
}

// RunVineyardsSlim is RunVineyards' memory-frugal twin: it never retains
// more than the current traversal frontier's Reductions, handing each
// stepped edge's pair of Reductions to onEdge instead of collecting every
// point's Reduction for the whole call.
func (m *Mesh) RunVineyardsSlim(c *simplicial.Complex, requireHomBirthToBeFirst bool, onEdge func(from, to Index, fromRed, toRed *homology.Reduction, swaps *vineyard.Swaps)) error {
	visited := make([]bool, len(m.Points))
	reductions := make(map[int]*homology.Reduction)

	for start := range m.Points {
		if visited[start] {
			continue
		}
		visited[start] = true
		startRed, err := homology.ReduceFromScratch(c, m.Points[start])
		if err != nil {
			return err
		}
		reductions[start] = startRed

		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range m.Neighbors[cur] {
				if visited[n] {
					continue
				}
				visited[n] = true
				red, swaps, err := vineyard.Step(c, reductions[cur], m.Points[n], requireHomBirthToBeFirst)
				if err != nil {
					return err
				}
				reductions[n] = red
				onEdge(FakeIndex(cur), FakeIndex(n), reductions[cur], red, swaps)
				queue = append(queue, n)
			}
			// Every edge out of cur has now been stepped, so nothing will
			// ever look its Reduction up again.
			delete(reductions, cur)
		}
	}
	return nil
}

// RecomputeDimDist infers the grid's per-axis point spacing from the first
// edge whose endpoints differ along each axis, if DimDist is not already
// set.
func (m *Mesh) RecomputeDimDist() {
	if m.DimDist != nil {
		return
	}
	var dd [3]float64
	var found [3]bool
	for i, neigh := range m.Neighbors {
		for _, j := range neigh {
			diff := m.Points[j].Sub(m.Points[i])
			for axis := 0; axis < 3; axis++ {
				if !found[axis] && math.Abs(diff[axis]) > 1e-9 {
					dd[axis] = math.Abs(diff[axis])
					found[axis] = true
				}
			}
		}
	}
	if found[0] || found[1] || found[2] {
		m.DimDist = &dd
	}
}

// ReadMeshFromOBJ parses a mesh from Wavefront OBJ text: v lines give point
// positions, l lines give (1-based) point-index pairs that become
// neighbors of each other. Coincident vertices closer than 1e-5 apart are
// rejected, since the grid graph's adjacency depends on vertex identity in
// a way a simplicial complex's coordinate-based geometry does not.
func ReadMeshFromOBJ(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	var points []geom.Vec
	var edges [][2]int
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("grid: malformed vertex line %q", scanner.Text())
			}
			var p geom.Vec
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("grid: malformed vertex line %q: %w", scanner.Text(), err)
				}
				p[i] = v
			}
			points = append(points, p)
		case "l":
			if len(fields) < 3 {
				return nil, fmt.Errorf("grid: malformed edge line %q", scanner.Text())
			}
			a, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("grid: malformed edge line %q: %w", scanner.Text(), err)
			}
			b, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("grid: malformed edge line %q: %w", scanner.Text(), err)
			}
			edges = append(edges, [2]int{a - 1, b - 1})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for i := range points {
		for j := 0; j < i; j++ {
			if points[i].Dist(points[j]) < 1e-5 {
				return nil, fmt.Errorf("grid: vertices %d and %d are coincident", j+1, i+1)
			}
		}
	}

	neighbors := make([][]int, len(points))
	for _, e := range edges {
		neighbors[e[0]] = append(neighbors[e[0]], e[1])
		neighbors[e[1]] = append(neighbors[e[1]], e[0])
	}

	m := &Mesh{Points: points, Neighbors: neighbors}
	m.RecomputeDimDist()
	return m, nil
}

// WriteOBJ writes the mesh as Wavefront OBJ text: one v line per point, one
// l line per undirected edge.
func (m *Mesh) WriteOBJ(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Points {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z()); err != nil {
			return err
		}
	}
	for i, neigh := range m.Neighbors {
		for _, j := range neigh {
			if j < i {
				continue
			}
			if _, err := fmt.Fprintf(bw, "l %d %d\n", i+1, j+1); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
