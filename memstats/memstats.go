// Package memstats reports how much memory a complex, its query grid, and
// a computed vineyards walk retain, broken down the way a long-running
// batch job's progress log would: per matrix, per stack, per dimension,
// and as a grand total.
package memstats

import (
	"github.com/mars-project/medax/bitmat"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/matstate"
	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
)

// MatrixMem is one matrix's shape and retained size.
type MatrixMem struct {
	Rows, Cols int32
	Entries    int
	Bytes      uintptr
}

func matrixMemOf(m *bitmat.Matrix) MatrixMem {
	return MatrixMem{Rows: m.Rows(), Cols: m.Cols(), Entries: len(m.ToPairs()), Bytes: m.MemUsage()}
}

// StackMem is a Stack's three matrices plus its ordering.
type StackMem struct {
	D, R, Ut MatrixMem
	Bytes    uintptr
}

func StackMemOf(s *homology.Stack) StackMem {
	return StackMem{
		D:     matrixMemOf(s.D),
		R:     matrixMemOf(s.R),
		Ut:    matrixMemOf(s.Ut),
		Bytes: s.MemUsage(),
	}
}

// ReductionMem is one key point's full persistence state, per dimension.
type ReductionMem struct {
	Dims  [3]StackMem
	Bytes uintptr
}

func ReductionMemOf(r *homology.Reduction) ReductionMem {
	var dims [3]StackMem
	for i := range r.Stacks {
		dims[i] = StackMemOf(&r.Stacks[i])
	}
	return ReductionMem{Dims: dims, Bytes: r.MemUsage()}
}

// SwapsMem is one Step's reported transpositions.
type SwapsMem struct {
	Count int
	Bytes uintptr
}

func SwapsMemOf(s *vineyard.Swaps) SwapsMem {
	if s == nil {
		return SwapsMem{}
	}
	return SwapsMem{Count: len(s.V), Bytes: uintptr(len(s.V)) * swapSize}
}

// swapSize approximates one Swap's footprint: an int plus two int32s.
const swapSize = 16

// ComplexMem is a complex's per-dimension simplex counts and an estimate of
// the bytes its simplex arrays retain.
type ComplexMem struct {
	Vertices, Edges, Triangles int
	Bytes                      uintptr
}

func ComplexMemOf(c *simplicial.Complex) ComplexMem {
	const vertexSize = 24 + 24 // ID+pointer, plus the pointed-to Vec
	const edgeSize = 24 + 2*4
	const triSize = 24 + 3*4
	m := ComplexMem{
		Vertices:  len(c.SimplicesPerDim[0]),
		Edges:     len(c.SimplicesPerDim[1]),
		Triangles: len(c.SimplicesPerDim[2]),
	}
	m.Bytes = uintptr(m.Vertices)*vertexSize + uintptr(m.Edges)*edgeSize + uintptr(m.Triangles)*triSize
	return m
}

// GridMem is a query grid's point count and an estimate of its retained
// bytes; Kind is "regular" or "mesh".
type GridMem struct {
	Kind   string
	Points int
	Bytes  uintptr
}

func GridMemOf(core *matstate.Core) GridMem {
	const vecSize = 24
	switch {
	case core.Regular != nil:
		n := core.Regular.Volume()
		return GridMem{Kind: "regular", Points: n, Bytes: vecSize}
	case core.Mesh != nil:
		n := len(core.Mesh.Points)
		bytes := uintptr(n) * vecSize
		for _, neigh := range core.Mesh.Neighbors {
			bytes += uintptr(len(neigh)) * 8
		}
		return GridMem{Kind: "mesh", Points: n, Bytes: bytes}
	default:
		return GridMem{Kind: "none"}
	}
}

// VineyardsMem is an entire walk's retained size: every visited point's
// Reduction plus every transition's Swaps.
type VineyardsMem struct {
	NumReductions  int
	ReductionBytes uintptr
	NumTransitions int
	SwapBytes      uintptr
	Bytes          uintptr
}

func VineyardsMemOf(v *matstate.Vineyards) VineyardsMem {
	m := VineyardsMem{NumReductions: len(v.Reductions), NumTransitions: len(v.Transitions)}
	for _, r := range v.Reductions {
		m.ReductionBytes += r.MemUsage()
	}
	for _, t := range v.Transitions {
		m.SwapBytes += SwapsMemOf(t.Swaps).Bytes
	}
	m.Bytes = m.ReductionBytes + m.SwapBytes
	return m
}

// MarsMem is the grand total: a complex, its grid, and a vineyards walk
// over it, the same breakdown a `matcli stats` run prints.
type MarsMem struct {
	Complex   ComplexMem
	Grid      GridMem
	Vineyards VineyardsMem
	Bytes     uintptr
}

func MarsMemOf(core *matstate.Core, v *matstate.Vineyards) MarsMem {
	complexMem := ComplexMemOf(core.Complex)
	gridMem := GridMemOf(core)
	vineyardsMem := VineyardsMemOf(v)
	return MarsMem{
		Complex:   complexMem,
		Grid:      gridMem,
		Vineyards: vineyardsMem,
		Bytes:     complexMem.Bytes + gridMem.Bytes + vineyardsMem.Bytes,
	}
}
