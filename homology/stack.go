// Package homology implements persistence reduction over a simplicial
// complex's boundary matrices, and the vineyards-ready Reduction state that
// the vineyard package updates incrementally as the query point moves.
package homology

import "github.com/mars-project/medax/bitmat"

// Stack holds one dimension's worth of reduced persistence state:
//
//   - D is the boundary matrix in filtration order (unreduced).
//   - R = D*V is D after column reduction, so every nonempty column has a
//     distinct lowest set row.
//   - Ut is the transpose of V's inverse, used by the vineyards swap solver
//     to track which columns were added into which during reduction.
//   - Ordering maps a simplex's canonical (insertion) id to its position in
//     the filtration this stack was reduced under.
type Stack struct {
	D        *bitmat.Matrix
	R        *bitmat.Matrix
	Ut       *bitmat.Matrix
	Ordering *bitmat.Permutation
}

// MemUsage estimates the bytes retained by the stack's matrices and
// ordering.
func (s *Stack) MemUsage() uintptr {
	return s.D.MemUsage() + s.R.MemUsage() + s.Ut.MemUsage() + s.Ordering.MemUsage()
}

// GivesBirth reports whether the simplex at filtration position ord (not
// canonical id) gives birth to a homology class, i.e. its R column is
// empty.
func (s *Stack) GivesBirth(ord int32) bool {
	return s.R.ColIsEmpty(ord)
}
