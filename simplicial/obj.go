package simplicial

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mars-project/medax/geom"
)

type edgeKey struct{ a, b int32 }

func orderedEdge(a, b int32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// coincidentThreshold2 is the squared-distance below which two vertices are
// rejected as coincident, per DESIGN.md's Open Question decision 3:
// spec.md states this threshold explicitly, so it takes precedence over the
// source's non-squared 1e-5 check.
const coincidentThreshold2 = 1e-10

// ReadOBJ parses a Wavefront OBJ surface (v/l/f lines, 1-indexed) into a
// Complex. Edges may be given explicitly via "l" lines or discovered
// implicitly from face boundaries; an explicit "l" duplicating a
// already-seen edge is an error.
func ReadOBJ(r io.Reader) (*Complex, error) {
	var vertices, edges, triangles []Simplex
	edgeMap := map[edgeKey]int32{}

	type rawTri struct {
		id   int32
		vs   [3]int32
		line int
	}
	var rawTris []rawTri

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"),
			strings.HasPrefix(line, "mtllib"),
			strings.HasPrefix(line, "o"),
			strings.HasPrefix(line, "s"):
			continue
		case strings.HasPrefix(line, "v"):
			fields := strings.Fields(line)
			coords, err := parseFloats(fields, 3)
			if err != nil {
				return nil, fmt.Errorf("simplicial: line %d: %w", lineNo, err)
			}
			vertices = append(vertices, Simplex{
				ID:       int32(len(vertices)),
				Coords:   &geom.Vec{coords[0], coords[1], coords[2]},
				Boundary: []int32{0},
			})
		case strings.HasPrefix(line, "l"):
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, fmt.Errorf("simplicial: line %d: %w", lineNo, ErrEdgeWrongArity)
			}
			ints, err := parseInts(fields, 2)
			if err != nil {
				return nil, fmt.Errorf("simplicial: line %d: %w", lineNo, err)
			}
			a, b := ints[0]-1, ints[1]-1
			key := orderedEdge(a, b)
			if _, ok := edgeMap[key]; ok {
				return nil, fmt.Errorf("simplicial: line %d: %w", lineNo, ErrDuplicateEdge)
			}
			id := int32(len(edges))
			edgeMap[key] = id
			edges = append(edges, Simplex{ID: id, Boundary: []int32{key.a, key.b}})
		case strings.HasPrefix(line, "f"):
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, fmt.Errorf("simplicial: line %d: %w", lineNo, ErrFaceWrongArity)
			}
			ints, err := parseInts(fields, 3)
			if err != nil {
				return nil, fmt.Errorf("simplicial: line %d: %w", lineNo, err)
			}
			rawTris = append(rawTris, rawTri{
				id:   int32(len(rawTris)),
				vs:   [3]int32{ints[0] - 1, ints[1] - 1, ints[2] - 1},
				line: lineNo,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			if vertices[i].Coords.Dist2(*vertices[j].Coords) < coincidentThreshold2 {
				return nil, fmt.Errorf("simplicial: vertices %d and %d: %w", i, j, ErrCoincidentVertices)
			}
		}
	}

	triangles = make([]Simplex, len(rawTris))
	for i, rt := range rawTris {
		var boundary [3]int32
		for k := 0; k < 3; k++ {
			a, b := rt.vs[k], rt.vs[(k+1)%3]
			key := orderedEdge(a, b)
			id, ok := edgeMap[key]
			if !ok {
				id = int32(len(edges))
				edgeMap[key] = id
				edges = append(edges, Simplex{ID: id, Boundary: []int32{key.a, key.b}})
			}
			boundary[k] = id
		}
		triangles[i] = Simplex{ID: int32(i), Boundary: boundary[:]}
	}

	return &Complex{SimplicesPerDim: [3][]Simplex{vertices, edges, triangles}}, nil
}

func parseFloats(fields []string, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if i+1 >= len(fields) {
			return nil, ErrMissingField
		}
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(fields []string, n int) ([]int32, error) {
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		if i+1 >= len(fields) {
			return nil, ErrMissingField
		}
		v, err := strconv.ParseInt(fields[i+1], 10, 32)
		if err != nil {
			return nil, err
		}
		out[i] = int32(v)
	}
	return out, nil
}

// WriteOBJ writes the complex's vertices and triangles as a Wavefront OBJ
// surface (edges are implicit in face definitions, matching the source's
// own writer).
func WriteOBJ(w io.Writer, c *Complex) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "o complex"); err != nil {
		return err
	}
	for _, v := range c.SimplicesPerDim[0] {
		if v.Coords == nil {
			return fmt.Errorf("simplicial: vertex %d missing coordinates", v.ID)
		}
		if _, err := fmt.Fprintf(bw, "v %v %v %v\n", v.Coords.X(), v.Coords.Y(), v.Coords.Z()); err != nil {
			return err
		}
	}
	for _, f := range c.SimplicesPerDim[2] {
		verts := map[int32]struct{}{}
		for _, ei := range f.Boundary {
			e := c.SimplicesPerDim[1][ei]
			verts[e.Boundary[0]] = struct{}{}
			verts[e.Boundary[1]] = struct{}{}
		}
		if len(verts) != 3 {
			return fmt.Errorf("simplicial: face %d does not have exactly three vertices", f.ID)
		}
		vs := make([]int32, 0, 3)
		for v := range verts {
			vs = append(vs, v)
		}
		sortInt32s(vs)
		if _, err := fmt.Fprintf(bw, "f %d %d %d\n", vs[0]+1, vs[1]+1, vs[2]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func sortInt32s(v []int32) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j-1] > v[j]; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}
