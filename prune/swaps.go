package prune

import (
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
)

// Euclidean removes swaps between simplices whose center points lie within
// squared distance minDist2 of each other (Dist2 <= minDist2), leaving only
// transpositions that represent spatially distinct medial-axis structure.
// It applies to swaps of any dimension.
func Euclidean(swaps *vineyard.Swaps, c *simplicial.Complex, minDist2 float64) *vineyard.Swaps {
	return filter(swaps, func(s vineyard.Swap) bool {
		a := c.SimplicesPerDim[s.Dim][s.I].CenterPoint(c)
		b := c.SimplicesPerDim[s.Dim][s.J].CenterPoint(c)
		return a.Dist2(b) > minDist2
	})
}

// CommonFace removes swaps between two simplices of dimension >= 1 that
// share at least one vertex.
func CommonFace(swaps *vineyard.Swaps, c *simplicial.Complex) *vineyard.Swaps {
	vertsOf := vertexSets(c)
	return filter(swaps, func(s vineyard.Swap) bool {
		if s.Dim == 0 {
			return true
		}
		vi := vertsOf[simpKey{s.Dim, s.I}]
		vj := vertsOf[simpKey{s.Dim, s.J}]
		return !setsIntersect(vi, vj)
	})
}

// Coboundary removes swaps between two simplices of dimension <= 1 that
// share a common cofacet (a simplex one dimension up containing both in
// its boundary).
func Coboundary(swaps *vineyard.Swaps, c *simplicial.Complex) *vineyard.Swaps {
	cob := coboundaries(c)
	return filter(swaps, func(s vineyard.Swap) bool {
		if s.Dim == 2 {
			return true
		}
		ci, okI := cob[simpKey{s.Dim, s.I}]
		cj, okJ := cob[simpKey{s.Dim, s.J}]
		if !okI || !okJ {
			return true
		}
		return !setsIntersect(ci, cj)
	})
}

// Persistence removes swaps where both endpoints' homology classes have
// lifetime below threshold in their respective reductions (the swap's
// source reduction for I, destination reduction for J).
func Persistence(swaps *vineyard.Swaps, c *simplicial.Complex, from, to *homology.Reduction, threshold float64) *vineyard.Swaps {
	return filter(swaps, func(s vineyard.Swap) bool {
		pi, okI := from.Persistence(c, s.Dim, s.I)
		pj, okJ := to.Persistence(c, s.Dim, s.J)
		if !okI || !okJ {
			return true
		}
		if pi.Lifetime() < threshold && pj.Lifetime() < threshold {
			return false
		}
		return true
	})
}

// Apply runs every pass param enables, in the order euclidean, face,
// coboundary, persistence, against swaps.
func Apply(swaps *vineyard.Swaps, c *simplicial.Complex, param Param, from, to *homology.Reduction) *vineyard.Swaps {
	out := swaps
	if param.Euclidean && param.EuclideanDistance != nil {
		out = Euclidean(out, c, *param.EuclideanDistance)
	}
	if param.Face {
		out = CommonFace(out, c)
	}
	if param.Coface {
		out = Coboundary(out, c)
	}
	if param.Persistence && param.PersistenceThreshold != nil {
		out = Persistence(out, c, from, to, *param.PersistenceThreshold)
	}
	return out
}

func filter(swaps *vineyard.Swaps, keep func(vineyard.Swap) bool) *vineyard.Swaps {
	out := make([]vineyard.Swap, 0, len(swaps.V))
	for _, s := range swaps.V {
		if keep(s) {
			out = append(out, s)
		}
	}
	return &vineyard.Swaps{V: out}
}

type simpKey struct {
	dim int
	id  int32
}

// vertexSets maps each dimension-1/2 simplex to the set of vertex ids in
// its closure.
func vertexSets(c *simplicial.Complex) map[simpKey]map[int32]struct{} {
	sets := make(map[simpKey]map[int32]struct{})
	for i, e := range c.SimplicesPerDim[1] {
		s := map[int32]struct{}{e.Boundary[0]: {}, e.Boundary[1]: {}}
		sets[simpKey{1, int32(i)}] = s
	}
	for i, f := range c.SimplicesPerDim[2] {
		s := make(map[int32]struct{})
		for _, ei := range f.Boundary {
			for v := range sets[simpKey{1, ei}] {
				s[v] = struct{}{}
			}
		}
		sets[simpKey{2, int32(i)}] = s
	}
	return sets
}

// coboundaries maps each dimension-0/1 simplex to the set of ids one
// dimension up that have it in their boundary.
func coboundaries(c *simplicial.Complex) map[simpKey]map[int32]struct{} {
	cob := make(map[simpKey]map[int32]struct{})
	for dim := 1; dim < 3; dim++ {
		for parent, s := range c.SimplicesPerDim[dim] {
			for _, face := range s.Boundary {
				key := simpKey{dim - 1, face}
				if cob[key] == nil {
					cob[key] = make(map[int32]struct{})
				}
				cob[key][int32(parent)] = struct{}{}
			}
		}
	}
	return cob
}

func setsIntersect(a, b map[int32]struct{}) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for k := range small {
		if _, ok := big[k]; ok {
			return true
		}
	}
	return false
}
