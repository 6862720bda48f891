package homology

import (
	"math"

	"github.com/mars-project/medax/bitmat"
	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/simplicial"
)

// Reduction is the complete persistence state of a complex's filtration by
// distance to KeyPoint: one Stack per dimension 0, 1, 2.
type Reduction struct {
	KeyPoint geom.Vec
	Stacks   [3]Stack
}

// MemUsage estimates the bytes retained across all three stacks.
func (red *Reduction) MemUsage() uintptr {
	var total uintptr
	for i := range red.Stacks {
		total += red.Stacks[i].MemUsage()
	}
	return total
}

// SimplexEnteringValue is a convenience wrapper around the complex's own
// filtration-value computation, keyed by KeyPoint.
func (red *Reduction) SimplexEnteringValue(c *simplicial.Complex, dim int, canonicalID int32) float64 {
	return c.SimplexEnteringValue(dim, canonicalID, [3]float64{red.KeyPoint.X(), red.KeyPoint.Y(), red.KeyPoint.Z()})
}

// FindKiller returns the canonical id of the dim+1 simplex whose reduced
// column kills the homology class born at the dim simplex canonicalID, or
// false if that class never dies (an essential class, or dim == 2).
func (red *Reduction) FindKiller(canonicalID int32, dim int) (int32, bool) {
	if dim >= 2 {
		return 0, false
	}
	ownOrd := red.Stacks[dim].Ordering.Map(canonicalID)
	above := &red.Stacks[dim+1]
	killerOrd, ok := above.R.ColWithLow(ownOrd)
	if !ok {
		return 0, false
	}
	return above.Ordering.Inv(killerOrd), true
}

// findVictim returns the canonical id of the dim-1 simplex whose birth is
// killed by the dim simplex canonicalID, i.e. the inverse of FindKiller. It
// is unused by any exported operation (the vineyards swap solver never
// needs to walk a death backwards to its birth), kept only because the
// reduction it mirrors names the equivalent private helper.
//
//nolint:unused
func (red *Reduction) findVictim(canonicalID int32, dim int) (int32, bool) {
	if dim == 0 {
		return 0, false
	}
	ownOrd := red.Stacks[dim].Ordering.Map(canonicalID)
	if red.Stacks[dim].R.ColIsEmpty(ownOrd) {
		return 0, false
	}
	low, ok := red.Stacks[dim].R.ColMax(ownOrd)
	if !ok {
		return 0, false
	}
	below := &red.Stacks[dim-1]
	return below.Ordering.Inv(low), true
}

// BirthDeathPair records one persistence-diagram point: a homology class of
// dimension Dim born at filtration value Birth and, if Death is not
// +Inf, killed at filtration value Death.
type BirthDeathPair struct {
	Dim     int
	Birth   float64
	BirthID int32
	Death   float64
	// DeathID is -1 for an essential class that never dies.
	DeathID int32
}

// Lifetime returns Death - Birth, which is +Inf for essential classes.
func (p BirthDeathPair) Lifetime() float64 {
	return p.Death - p.Birth
}

// Persistence returns the birth-death pair for the simplex canonicalID of
// dimension dim, or false if that simplex does not give birth to a
// homology class (i.e. its reduced column is nonempty).
func (red *Reduction) Persistence(c *simplicial.Complex, dim int, canonicalID int32) (BirthDeathPair, bool) {
	ownOrd := red.Stacks[dim].Ordering.Map(canonicalID)
	if !red.Stacks[dim].R.ColIsEmpty(ownOrd) {
		return BirthDeathPair{}, false
	}
	birth := red.SimplexEnteringValue(c, dim, canonicalID)
	death := math.Inf(1)
	deathID := int32(-1)
	if killer, ok := red.FindKiller(canonicalID, dim); ok {
		deathID = killer
		death = red.SimplexEnteringValue(c, dim+1, killer)
	}
	return BirthDeathPair{Dim: dim, Birth: birth, BirthID: canonicalID, Death: death, DeathID: deathID}, true
}

// Barcode returns every birth-death pair across all three dimensions.
func (red *Reduction) Barcode(c *simplicial.Complex) []BirthDeathPair {
	var out []BirthDeathPair
	for dim := 0; dim < 3; dim++ {
		n := c.NumSimplicesOfDim(dim)
		for id := int32(0); id < int32(n); id++ {
			if p, ok := red.Persistence(c, dim, id); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// BettiNumbers returns the count of essential (never-dying) classes per
// dimension.
func (red *Reduction) BettiNumbers(c *simplicial.Complex) [3]int {
	var betti [3]int
	for _, p := range red.Barcode(c) {
		if math.IsInf(p.Death, 1) {
			betti[p.Dim]++
		}
	}
	return betti
}

// ReduceFromScratch builds a Reduction for complex from a standing start:
// compute the filtration ordering per dimension, reduce each boundary
// matrix in that order, and invert the recorded column adds to get each
// stack's Ut.
func ReduceFromScratch(c *simplicial.Complex, keyPoint geom.Vec) (*Reduction, error) {
	vPerm, ePerm, tPerm := ComputePermutations(c, keyPoint)

	// D0 has no rows: a vertex has no boundary, so every vertex column is a
	// birth column.
	d0 := bitmat.NewSparse(0, int32(c.NumSimplicesOfDim(0)))
	d0.SetPermutations(vPerm.Clone(), nil)

	d1, err := c.BoundaryMatrix(1)
	if err != nil {
		return nil, err
	}
	d1.SetPermutations(ePerm.Clone(), vPerm.Clone())

	d2, err := c.BoundaryMatrix(2)
	if err != nil {
		return nil, err
	}
	d2.SetPermutations(tPerm.Clone(), ePerm.Clone())

	stack0, err := reduceOneDim(d0)
	if err != nil {
		return nil, err
	}
	stack1, err := reduceOneDim(d1)
	if err != nil {
		return nil, err
	}
	stack2, err := reduceOneDim(d2)
	if err != nil {
		return nil, err
	}

	// Orderings on D/R are "sorted position -> canonical id"; a Reduction's
	// own Ordering field is the other direction, "canonical id -> sorted
	// position", matching how the vineyards solver looks simplices up.
	vPerm.Reverse()
	ePerm.Reverse()
	tPerm.Reverse()

	stack0.Ordering = vPerm
	stack1.Ordering = ePerm
	stack2.Ordering = tPerm

	red := &Reduction{
		KeyPoint: keyPoint,
		Stacks:   [3]Stack{stack0, stack1, stack2},
	}
	if err := red.assertOrdering(c); err != nil {
		return nil, err
	}
	return red, nil
}

func reduceOneDim(d *bitmat.Matrix) (Stack, error) {
	unreduced := d.Clone()
	adds := d.Reduce()

	v := bitmat.Eye(d.Cols())
	for _, a := range adds {
		v.AddCols(a[0], a[1])
	}

	var ut *bitmat.Matrix
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if se, ok := r.(*bitmat.SingularMatrixError); ok {
					err = se
					return
				}
				panic(r)
			}
		}()
		ut = v.InverseGaussJordan().Transpose()
		return nil
	}()
	if err != nil {
		return Stack{}, err
	}

	return Stack{D: unreduced, R: d, Ut: ut}, nil
}
