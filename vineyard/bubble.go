// Package vineyard implements the vineyards algorithm: given a Reduction
// already valid at one key point, incrementally update it for a nearby key
// point by bubble-sorting the filtration back into order and replaying only
// the adjacent transpositions that changed, rather than reducing from
// scratch.
package vineyard

// ComputeTranspositions bubble-sorts b into ascending order using only
// adjacent swaps, and returns the sequence of swap positions (each i means
// "swap b[i] and b[i+1]") together with the pair of values left at (i, i+1)
// after each swap. The swapped-value pairs let a caller recover which
// simplices a given transposition concerned without re-deriving it from
// position alone.
func ComputeTranspositions(b []int32) ([]int32, [][2]int32) {
	n := len(b)
	work := append([]int32(nil), b...)

	n0 := n
	for i := 0; i < n; i++ {
		if int(work[i]) != i {
			n0 = i
			break
		}
	}
	n1 := n
	for i := n - 1; i >= 0; i-- {
		if int(work[i]) != i {
			n1 = i
			break
		}
	}

	var at []int32
	var swapped [][2]int32
	for pass := n0; pass <= n1; pass++ {
		anySwap := false
		for i := 0; i < n-1; i++ {
			if work[i] > work[i+1] {
				at = append(at, int32(i))
				work[i], work[i+1] = work[i+1], work[i]
				swapped = append(swapped, [2]int32{work[i], work[i+1]})
				anySwap = true
			}
		}
		if !anySwap {
			break
		}
	}
	return at, swapped
}
