package bitmat

import "sort"

// col is a single sparse GF(2) column: a strictly ascending list of set row
// indices.
type col []int32

func (c col) has(r int32) bool {
	_, ok := c.search(r)
	return ok
}

func (c col) search(r int32) (int, bool) {
	i := sort.Search(len(c), func(i int) bool { return c[i] >= r })
	if i < len(c) && c[i] == r {
		return i, true
	}
	return i, false
}

func (c col) set(r int32) col {
	i, ok := c.search(r)
	if ok {
		return c
	}
	c = append(c, 0)
	copy(c[i+1:], c[i:])
	c[i] = r
	return c
}

func (c col) unset(r int32) col {
	i, ok := c.search(r)
	if !ok {
		return c
	}
	return append(c[:i], c[i+1:]...)
}

// addMod2 merges two strictly-ascending row lists, dropping entries present
// in both (GF(2) addition).
func (c col) addMod2(o col) col {
	out := make(col, 0, len(c)+len(o))
	i, j := 0, 0
	for i < len(c) && j < len(o) {
		switch {
		case c[i] < o[j]:
			out = append(out, c[i])
			i++
		case c[i] > o[j]:
			out = append(out, o[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, c[i:]...)
	out = append(out, o[j:]...)
	return out
}

// maxUnder returns the entry in c whose image under rowPerm.Inv is greatest
// (i.e. the column's logical "lowest 1"). rowPerm == nil means identity.
func (c col) maxUnder(rowPerm *Permutation) (int32, bool) {
	if len(c) == 0 {
		return 0, false
	}
	if rowPerm == nil {
		return c[len(c)-1], true
	}
	best := c[0]
	bestKey := rowPerm.Inv(best)
	for _, rr := range c[1:] {
		if k := rowPerm.Inv(rr); k > bestKey {
			bestKey = k
			best = rr
		}
	}
	return best, true
}

// sparseBacking is the default, sorted-list-per-column GF(2) matrix backend.
type sparseBacking struct {
	columns []col
	rows    int32
	cols    int32
}

func newSparseBacking(rows, cols int32) *sparseBacking {
	return &sparseBacking{columns: make([]col, cols), rows: rows, cols: cols}
}

func eyeSparseBacking(n int32) *sparseBacking {
	b := newSparseBacking(n, n)
	for i := int32(0); i < n; i++ {
		b.columns[i] = col{i}
	}
	return b
}

func sparseBackingFromPairs(rows, cols int32, pairs [][2]int32) *sparseBacking {
	b := newSparseBacking(rows, cols)
	for _, p := range pairs {
		b.columns[p[1]] = b.columns[p[1]].set(p[0])
	}
	return b
}

func (b *sparseBacking) nrows() int32 { return b.rows }
func (b *sparseBacking) ncols() int32 { return b.cols }

func (b *sparseBacking) get(r, c int32) bool { return b.columns[c].has(r) }

func (b *sparseBacking) set(r, c int32, val bool) {
	if val {
		b.columns[c] = b.columns[c].set(r)
	} else {
		b.columns[c] = b.columns[c].unset(r)
	}
}

func (b *sparseBacking) addCols(c1, c2 int32) {
	b.columns[c1] = b.columns[c1].addMod2(b.columns[c2])
}

func (b *sparseBacking) colmax(c int32, rowPerm *Permutation) (int32, bool) {
	return b.columns[c].maxUnder(rowPerm)
}

func (b *sparseBacking) colWithLow(r int32, rowPerm *Permutation) (int32, bool) {
	for c, column := range b.columns {
		if !column.has(r) {
			continue
		}
		if m, ok := column.maxUnder(rowPerm); ok && m == r {
			return int32(c), true
		}
	}
	return 0, false
}

func (b *sparseBacking) toPairs() [][2]int32 {
	pairs := make([][2]int32, 0)
	for c, column := range b.columns {
		for _, r := range column {
			pairs = append(pairs, [2]int32{r, int32(c)})
		}
	}
	return pairs
}

func (b *sparseBacking) bottomPadWithIdentity() {
	rows := b.rows
	b.rows *= 2
	for i := int32(0); i < rows; i++ {
		b.set(rows+i, i, true)
	}
}

func (b *sparseBacking) colIsEmpty(c int32) bool { return len(b.columns[c]) == 0 }

func (b *sparseBacking) memUsage() uintptr {
	var total uintptr
	for _, c := range b.columns {
		total += uintptr(cap(c)) * 4
	}
	return total
}

func (b *sparseBacking) fillRatio() float64 {
	max := float64(b.rows) * float64(b.cols)
	if max == 0 {
		return 0
	}
	var used float64
	for _, c := range b.columns {
		used += float64(len(c))
	}
	return used / max
}

func (b *sparseBacking) clone() backing {
	out := &sparseBacking{columns: make([]col, len(b.columns)), rows: b.rows, cols: b.cols}
	for i, c := range b.columns {
		out.columns[i] = append(col(nil), c...)
	}
	return out
}
