package vineyard

import (
	"github.com/mars-project/medax/bitmat"
	"github.com/mars-project/medax/homology"
)

// solveOneSwap performs the adjacent transposition (i, i+1) on stack, whose
// rows/columns are also columns/rows of upStack (the dimension above),
// keeping R reduced and U_t consistent throughout. It returns (birth, ok):
// ok is false when the swap produced no vineyards-significant change
// ("None" in the case analysis this mirrors), and when ok is true, birth
// reports whether the transposition is a "faustian swap" — one where a
// death simplex and a birth simplex traded places, meaning a new homology
// class with nonzero persistence was recorded crossing the key point path.
func solveOneSwap(i int32, stack, upStack *homology.Stack) (birth bool, ok bool) {
	givesDeath := func(r *bitmat.Matrix, c int32) bool { return !r.ColIsEmpty(c) }

	deathI := givesDeath(stack.R, i)
	birthI := !deathI
	deathI1 := givesDeath(stack.R, i+1)
	birthI1 := !deathI1

	switch {
	case birthI && birthI1:
		stack.Ut.Set(i+1, i, false)
		k, kOk := upStack.R.ColWithLow(i)
		l, lOk := upStack.R.ColWithLow(i + 1)
		if kOk && lOk && upStack.R.Get(i, l) {
			switch {
			case k < l:
				stack.R.SwapCols(i, i+1)
				upStack.R.SwapRows(i, i+1)
				upStack.R.AddCols(l, k)
				stack.Ut.SwapColsAndRows(i, i+1)
				upStack.Ut.AddCols(k, l)
				return false, false
			case l < k:
				stack.R.SwapCols(i, i+1)
				upStack.R.SwapRows(i, i+1)
				upStack.R.AddCols(k, l)
				stack.Ut.SwapColsAndRows(i, i+1)
				upStack.Ut.AddCols(l, k)
				return false, true
			default:
				panic(&UnreachableCaseError{Detail: "birth/birth case found k == l"})
			}
		}
		stack.R.SwapCols(i, i+1)
		upStack.R.SwapRows(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false

	case deathI && deathI1:
		if stack.Ut.Get(i+1, i) {
			lowI, _ := stack.R.ColMax(i)
			lowI1, _ := stack.R.ColMax(i + 1)
			stack.Ut.AddCols(i, i+1)
			stack.R.AddCols(i+1, i)
			stack.R.SwapCols(i, i+1)
			upStack.R.SwapRows(i, i+1)
			stack.Ut.SwapColsAndRows(i, i+1)
			if lowI < lowI1 {
				return false, false
			}
			stack.R.AddCols(i+1, i)
			stack.Ut.AddCols(i, i+1)
			return false, true
		}
		stack.R.SwapCols(i, i+1)
		upStack.R.SwapRows(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false

	case deathI && birthI1:
		if stack.Ut.Get(i+1, i) {
			stack.Ut.AddCols(i, i+1)
			stack.R.AddCols(i+1, i)
			stack.R.SwapCols(i, i+1)
			upStack.R.SwapRows(i, i+1)
			stack.R.AddCols(i+1, i)
			stack.Ut.SwapColsAndRows(i, i+1)
			stack.Ut.AddCols(i, i+1)
			return true, true
		}
		stack.R.SwapCols(i, i+1)
		upStack.R.SwapRows(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false

	case birthI && deathI1:
		stack.Ut.Set(i+1, i, false)
		stack.R.SwapCols(i, i+1)
		upStack.R.SwapRows(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false
	}

	panic(&UnreachableCaseError{Detail: "no birth/death combination matched"})
}

// solveOneSwapTopDim is solveOneSwap specialized to the top dimension,
// which has no stack above it to keep synchronized. It additionally reports
// a would-be faustian swap as non-faustian (birth false, ok true) when any
// earlier column of R (index below i) is empty, i.e. a birth column.
func solveOneSwapTopDim(i int32, stack *homology.Stack) (birth bool, ok bool) {
	givesDeath := func(r *bitmat.Matrix, c int32) bool { return !r.ColIsEmpty(c) }

	deathI := givesDeath(stack.R, i)
	birthI := !deathI
	deathI1 := givesDeath(stack.R, i+1)
	birthI1 := !deathI1

	switch {
	case birthI && birthI1:
		stack.Ut.Set(i+1, i, false)
		stack.R.SwapCols(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false

	case deathI && deathI1:
		if stack.Ut.Get(i+1, i) {
			lowI, _ := stack.R.ColMax(i)
			lowI1, _ := stack.R.ColMax(i + 1)
			stack.Ut.AddCols(i, i+1)
			stack.R.AddCols(i+1, i)
			stack.R.SwapCols(i, i+1)
			stack.Ut.SwapColsAndRows(i, i+1)
			if lowI < lowI1 {
				return false, false
			}
			stack.R.AddCols(i+1, i)
			stack.Ut.AddCols(i, i+1)
			return false, true
		}
		stack.R.SwapCols(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false

	case deathI && birthI1:
		if stack.Ut.Get(i+1, i) {
			stack.Ut.AddCols(i, i+1)
			stack.R.AddCols(i+1, i)
			stack.R.SwapCols(i, i+1)
			stack.R.AddCols(i+1, i)
			stack.Ut.SwapColsAndRows(i, i+1)
			stack.Ut.AddCols(i, i+1)

			for k := int32(0); k < i; k++ {
				if stack.R.ColIsEmpty(k) {
					return false, true
				}
			}
			return true, true
		}
		stack.R.SwapCols(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false

	case birthI && deathI1:
		stack.Ut.Set(i+1, i, false)
		stack.R.SwapCols(i, i+1)
		stack.Ut.SwapColsAndRows(i, i+1)
		return false, false
	}

	panic(&UnreachableCaseError{Detail: "no birth/death combination matched"})
}
