package vineyard

import (
	"github.com/mars-project/medax/bitmat"
	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
)

// Swap names a transposition between two canonical simplices of the same
// dimension whose relative filtration order changed across a Step.
type Swap struct {
	Dim  int
	I, J int32
}

// Swaps is the set of transpositions a single Step produced.
type Swaps struct {
	V []Swap
}

// Step advances reduction, which must already be valid at its own
// KeyPoint, to be valid at keyPoint instead. It does this by bubble-sorting
// each dimension's filtration ordering from the old key point to the new
// one and replaying only the resulting adjacent transpositions, top
// dimension first since it has no stack above it to keep in sync.
//
// requireHomBirthToBeFirst must be false: the "only report the first
// persistent cycle per dimension" restriction it names was never finished,
// so Step rejects the flag rather than silently ignoring it.
func Step(complex *simplicial.Complex, reduction *homology.Reduction, keyPoint geom.Vec, requireHomBirthToBeFirst bool) (*homology.Reduction, *Swaps, error) {
	if requireHomBirthToBeFirst {
		return nil, nil, ErrHomBirthFirstUnimplemented
	}

	stack0 := cloneStack(&reduction.Stacks[0])
	stack1 := cloneStack(&reduction.Stacks[1])
	stack2 := cloneStack(&reduction.Stacks[2])

	vPerm, ePerm, tPerm := homology.ComputePermutations(complex, keyPoint)

	var swaps []Swap

	// Dimension 2 (triangles): no stack above, use the top-dimension solver.
	tPerm.Reverse()
	vineOrdering2 := bitmat.FromTo(stack2.Ordering, tPerm)
	swapIs2, swappedVals2 := ComputeTranspositions(vineOrdering2.Forwards())
	for idx, i := range swapIs2 {
		birth, ok := solveOneSwapTopDim(i, &stack2)
		stack2.D.SwapCols(i, i+1)
		if ok && birth {
			pair := swappedVals2[idx]
			swaps = append(swaps, Swap{Dim: 2, I: tPerm.Inv(pair[0]), J: tPerm.Inv(pair[1])})
		}
	}
	stack2.Ordering = tPerm

	// Dimension 1 (edges): stack above is the already-updated triangle stack.
	ePerm.Reverse()
	vineOrdering1 := bitmat.FromTo(stack1.Ordering, ePerm)
	swapIs1, swappedVals1 := ComputeTranspositions(vineOrdering1.Forwards())
	for idx, i := range swapIs1 {
		birth, ok := solveOneSwap(i, &stack1, &stack2)
		stack1.D.SwapCols(i, i+1)
		stack2.D.SwapRows(i, i+1)
		if ok && birth {
			pair := swappedVals1[idx]
			swaps = append(swaps, Swap{Dim: 1, I: ePerm.Inv(pair[0]), J: ePerm.Inv(pair[1])})
		}
	}
	stack1.Ordering = ePerm

	// Dimension 0 (vertices): stack above is the already-updated edge stack.
	vPerm.Reverse()
	vineOrdering0 := bitmat.FromTo(stack0.Ordering, vPerm)
	swapIs0, swappedVals0 := ComputeTranspositions(vineOrdering0.Forwards())
	for idx, i := range swapIs0 {
		birth, ok := solveOneSwap(i, &stack0, &stack1)
		stack0.D.SwapCols(i, i+1)
		stack1.D.SwapRows(i, i+1)
		if ok && birth {
			pair := swappedVals0[idx]
			swaps = append(swaps, Swap{Dim: 0, I: vPerm.Inv(pair[0]), J: vPerm.Inv(pair[1])})
		}
	}
	stack0.Ordering = vPerm

	next := &homology.Reduction{
		KeyPoint: keyPoint,
		Stacks:   [3]homology.Stack{stack0, stack1, stack2},
	}
	return next, &Swaps{V: swaps}, nil
}

func cloneStack(s *homology.Stack) homology.Stack {
	return homology.Stack{
		D:        s.D.Clone(),
		R:        s.R.Clone(),
		Ut:       s.Ut.Clone(),
		Ordering: s.Ordering.Clone(),
	}
}
