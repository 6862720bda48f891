package bitmat

import "github.com/bits-and-blooms/bitset"

// denseBacking is the bit-packed alternative to sparseBacking, one
// *bitset.BitSet per column, for matrices dense enough that a sorted row
// list stops paying for itself.
type denseBacking struct {
	columns []*bitset.BitSet
	rows    int32
	cols    int32
}

func newDenseBacking(rows, cols int32) *denseBacking {
	columns := make([]*bitset.BitSet, cols)
	for i := range columns {
		columns[i] = bitset.New(uint(rows))
	}
	return &denseBacking{columns: columns, rows: rows, cols: cols}
}

func eyeDenseBacking(n int32) *denseBacking {
	b := newDenseBacking(n, n)
	for i := int32(0); i < n; i++ {
		b.columns[i].Set(uint(i))
	}
	return b
}

func denseBackingFromPairs(rows, cols int32, pairs [][2]int32) *denseBacking {
	b := newDenseBacking(rows, cols)
	for _, p := range pairs {
		b.columns[p[1]].Set(uint(p[0]))
	}
	return b
}

func (b *denseBacking) nrows() int32 { return b.rows }
func (b *denseBacking) ncols() int32 { return b.cols }

func (b *denseBacking) get(r, c int32) bool { return b.columns[c].Test(uint(r)) }

func (b *denseBacking) set(r, c int32, val bool) {
	if val {
		b.columns[c].Set(uint(r))
	} else {
		b.columns[c].Clear(uint(r))
	}
}

func (b *denseBacking) addCols(c1, c2 int32) {
	b.columns[c1].InPlaceSymmetricDifference(b.columns[c2])
}

func (b *denseBacking) colmax(c int32, rowPerm *Permutation) (int32, bool) {
	bs := b.columns[c]
	if bs.None() {
		return 0, false
	}
	if rowPerm == nil {
		r, _ := bs.NextSet(0)
		best := r
		for {
			n, ok := bs.NextSet(r + 1)
			if !ok {
				break
			}
			best, r = n, n
		}
		return int32(best), true
	}
	var best int32
	bestKey := int32(-1)
	first := true
	for r, ok := bs.NextSet(0); ok; r, ok = bs.NextSet(r + 1) {
		rr := int32(r)
		key := rowPerm.Inv(rr)
		if first || key > bestKey {
			bestKey = key
			best = rr
			first = false
		}
	}
	return best, !first
}

func (b *denseBacking) colWithLow(r int32, rowPerm *Permutation) (int32, bool) {
	for c := int32(0); c < b.cols; c++ {
		if !b.columns[c].Test(uint(r)) {
			continue
		}
		if m, ok := b.colmax(c, rowPerm); ok && m == r {
			return c, true
		}
	}
	return 0, false
}

func (b *denseBacking) toPairs() [][2]int32 {
	pairs := make([][2]int32, 0)
	for c := int32(0); c < b.cols; c++ {
		for r, ok := b.columns[c].NextSet(0); ok; r, ok = b.columns[c].NextSet(r + 1) {
			pairs = append(pairs, [2]int32{int32(r), c})
		}
	}
	return pairs
}

func (b *denseBacking) bottomPadWithIdentity() {
	rows := b.rows
	next := newDenseBacking(rows*2, b.cols)
	for _, p := range b.toPairs() {
		next.set(p[0], p[1], true)
	}
	for i := int32(0); i < rows; i++ {
		next.set(rows+i, i, true)
	}
	b.columns = next.columns
	b.rows = next.rows
}

func (b *denseBacking) colIsEmpty(c int32) bool { return b.columns[c].None() }

func (b *denseBacking) memUsage() uintptr {
	var total uintptr
	for _, c := range b.columns {
		total += uintptr(c.BinaryStorageSize())
	}
	return total
}

func (b *denseBacking) fillRatio() float64 {
	max := float64(b.rows) * float64(b.cols)
	if max == 0 {
		return 0
	}
	var used uint
	for _, c := range b.columns {
		used += c.Count()
	}
	return float64(used) / max
}

func (b *denseBacking) clone() backing {
	out := &denseBacking{columns: make([]*bitset.BitSet, len(b.columns)), rows: b.rows, cols: b.cols}
	for i, c := range b.columns {
		out.columns[i] = c.Clone()
	}
	return out
}
