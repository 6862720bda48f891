package bitmat

import "math"

// backing is the storage contract shared by sparseBacking and denseBacking.
// Matrix operates purely in terms of it, unaware of which representation is
// in play.
type backing interface {
	nrows() int32
	ncols() int32
	get(r, c int32) bool
	set(r, c int32, val bool)
	addCols(c1, c2 int32)
	colmax(c int32, rowPerm *Permutation) (int32, bool)
	colWithLow(r int32, rowPerm *Permutation) (int32, bool)
	toPairs() [][2]int32
	bottomPadWithIdentity()
	colIsEmpty(c int32) bool
	memUsage() uintptr
	fillRatio() float64
	clone() backing
}

// denseFillRatioThreshold is the whole-matrix fill ratio (set entries over
// rows×cols) at or above which Reduce switches a matrix from the sparse to
// the dense backend before continuing.
const denseFillRatioThreshold = 0.4

// Matrix is a GF(2) matrix with lazily-instantiated row/column
// permutations: logical coordinates are translated through colPerm/rowPerm
// (nil meaning identity) before reaching the backing store, so swapping
// rows or columns is O(1) until BakeInPermutations is called.
type Matrix struct {
	core    backing
	colPerm *Permutation
	rowPerm *Permutation
}

// NewSparse returns a zero matrix using the sorted-list sparse backend.
func NewSparse(rows, cols int32) *Matrix {
	return &Matrix{core: newSparseBacking(rows, cols)}
}

// NewDense returns a zero matrix using the bit-packed dense backend.
func NewDense(rows, cols int32) *Matrix {
	return &Matrix{core: newDenseBacking(rows, cols)}
}

// Eye returns the n×n identity matrix, sparse-backed.
func Eye(n int32) *Matrix {
	return &Matrix{core: eyeSparseBacking(n)}
}

// FromPairs builds a sparse-backed matrix with exactly the given set
// entries.
func FromPairs(rows, cols int32, pairs [][2]int32) *Matrix {
	return &Matrix{core: sparseBackingFromPairs(rows, cols, pairs)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int32 { return m.core.nrows() }

// Cols returns the number of columns.
func (m *Matrix) Cols() int32 { return m.core.ncols() }

func (m *Matrix) mapC(c int32) int32 {
	if m.colPerm == nil {
		return c
	}
	return m.colPerm.Map(c)
}

func (m *Matrix) mapR(r int32) int32 {
	if m.rowPerm == nil {
		return r
	}
	return m.rowPerm.Map(r)
}

func (m *Matrix) invC(cc int32) int32 {
	if m.colPerm == nil {
		return cc
	}
	return m.colPerm.Inv(cc)
}

func (m *Matrix) invR(rr int32) int32 {
	if m.rowPerm == nil {
		return rr
	}
	return m.rowPerm.Inv(rr)
}

// SetPermutations installs explicit column/row permutations, replacing any
// already present. Either may be nil for identity. Used when constructing a
// boundary matrix whose logical column/row order is a known filtration
// ordering, rather than building it up through SwapRows/SwapCols.
func (m *Matrix) SetPermutations(colPerm, rowPerm *Permutation) {
	m.colPerm = colPerm
	m.rowPerm = rowPerm
}

// Get returns the logical entry at (r, c).
func (m *Matrix) Get(r, c int32) bool { return m.core.get(m.mapR(r), m.mapC(c)) }

// Set sets the logical entry at (r, c).
func (m *Matrix) Set(r, c int32, val bool) { m.core.set(m.mapR(r), m.mapC(c), val) }

// SwapRows exchanges the logical identities of rows a and b in O(1).
func (m *Matrix) SwapRows(a, b int32) {
	if m.rowPerm == nil {
		m.rowPerm = Identity(m.core.nrows())
	}
	m.rowPerm.Swap(a, b)
}

// SwapCols exchanges the logical identities of columns a and b in O(1).
func (m *Matrix) SwapCols(a, b int32) {
	if m.colPerm == nil {
		m.colPerm = Identity(m.core.ncols())
	}
	m.colPerm.Swap(a, b)
}

// SwapColsAndRows swaps both the row and column identity of a and b — used
// when a single index names both a simplex's row and its column.
func (m *Matrix) SwapColsAndRows(a, b int32) {
	m.SwapCols(a, b)
	m.SwapRows(a, b)
}

// AddCols adds column c2 into column c1, in place, mod 2.
func (m *Matrix) AddCols(c1, c2 int32) {
	m.core.addCols(m.mapC(c1), m.mapC(c2))
}

// ColMax returns the logical row of column c's lowest set entry under the
// row permutation (i.e. the row whose inverse image is greatest), or false
// if the column is empty.
func (m *Matrix) ColMax(c int32) (int32, bool) {
	rr, ok := m.core.colmax(m.mapC(c), m.rowPerm)
	if !ok {
		return 0, false
	}
	return m.invR(rr), true
}

// ColWithLow returns the logical column whose ColMax is exactly r.
func (m *Matrix) ColWithLow(r int32) (int32, bool) {
	cc, ok := m.core.colWithLow(m.mapR(r), m.rowPerm)
	if !ok {
		return 0, false
	}
	return m.invC(cc), true
}

// ColIsEmpty reports whether column c has no set entries.
func (m *Matrix) ColIsEmpty(c int32) bool { return m.core.colIsEmpty(m.mapC(c)) }

// GivesBirth reports whether column c gives birth to a new homology class,
// i.e. is empty after reduction.
func (m *Matrix) GivesBirth(c int32) bool { return m.ColIsEmpty(c) }

// ToPairs returns every set (row, col) entry in logical coordinates.
func (m *Matrix) ToPairs() [][2]int32 {
	pairs := m.core.toPairs()
	out := make([][2]int32, len(pairs))
	for i, p := range pairs {
		out[i] = [2]int32{m.invR(p[0]), m.invC(p[1])}
	}
	return out
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	pairs := m.ToPairs()
	swapped := make([][2]int32, len(pairs))
	for i, p := range pairs {
		swapped[i] = [2]int32{p[1], p[0]}
	}
	return FromPairs(m.Cols(), m.Rows(), swapped)
}

// BottomPadWithIdentity doubles the row count and sets the new bottom block
// to the identity, preserving any prior row permutation over the old rows.
func (m *Matrix) BottomPadWithIdentity() {
	rows := m.core.nrows()
	m.core.bottomPadWithIdentity()
	if m.rowPerm == nil {
		m.rowPerm = Identity(m.core.nrows())
	} else {
		m.rowPerm.PushN(rows)
	}
	// The backing padded its own storage with the identity; under a column
	// permutation that is not the logical identity, so redo it logically.
	for i := int32(0); i < rows; i++ {
		m.core.set(rows+i, i, false)
	}
	for i := int32(0); i < rows; i++ {
		m.Set(rows+i, i, true)
	}
}

// GaussJordan performs column-pivot Gauss-Jordan elimination in place,
// producing the identity in the top block. It panics with *SingularMatrixError
// if a column has no eligible pivot — this is a programming fault, since
// callers only ever invert boundary-derived add matrices, which are always
// full rank.
func (m *Matrix) GaussJordan() {
	cols := m.core.ncols()
	for k := int32(0); k < cols; k++ {
		if !m.Get(k, k) {
			found := int32(-1)
			for kk := k + 1; kk < cols; kk++ {
				if m.Get(k, kk) {
					found = kk
					break
				}
			}
			if found < 0 {
				panic(&SingularMatrixError{Col: k})
			}
			m.SwapCols(k, found)
		}
		for c := int32(0); c < cols; c++ {
			if c == k {
				continue
			}
			if m.Get(k, c) {
				m.AddCols(c, k)
			}
		}
	}
}

// ExtractBottomBlockTranspose returns the lower half of the matrix,
// transposed, as its own Matrix.
func (m *Matrix) ExtractBottomBlockTranspose() *Matrix {
	cols := m.Cols()
	rows := m.Rows()
	r0 := rows / 2

	pairs := make([][2]int32, 0)
	for c := int32(0); c < cols; c++ {
		for r := r0; r < rows; r++ {
			if m.Get(r, c) {
				pairs = append(pairs, [2]int32{c, r - r0})
			}
		}
	}
	return FromPairs(r0, cols, pairs)
}

// InverseGaussJordan returns the matrix inverse, computed by transposing,
// bottom-padding with the identity, column-pivot Gauss-Jordan eliminating,
// and extracting the transposed bottom block.
func (m *Matrix) InverseGaussJordan() *Matrix {
	t := m.Transpose()
	t.BottomPadWithIdentity()
	t.GaussJordan()
	return t.ExtractBottomBlockTranspose()
}

// BakeInPermutations materializes the current row/column permutations into
// the backing storage and resets both permutations to identity (nil).
func (m *Matrix) BakeInPermutations() {
	pairs := m.ToPairs()
	switch m.core.(type) {
	case *denseBacking:
		m.core = denseBackingFromPairs(m.Rows(), m.Cols(), pairs)
	default:
		m.core = sparseBackingFromPairs(m.Rows(), m.Cols(), pairs)
	}
	m.colPerm = nil
	m.rowPerm = nil
}

// Clone returns an independent deep copy, including permutations.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{core: m.core.clone()}
	if m.colPerm != nil {
		out.colPerm = m.colPerm.Clone()
	}
	if m.rowPerm != nil {
		out.rowPerm = m.rowPerm.Clone()
	}
	return out
}

// MemUsage estimates the bytes retained by the matrix.
func (m *Matrix) MemUsage() uintptr {
	total := m.core.memUsage()
	if m.colPerm != nil {
		total += m.colPerm.MemUsage()
	}
	if m.rowPerm != nil {
		total += m.rowPerm.MemUsage()
	}
	return total
}

// maybeDensify swaps the backing store for the bit-packed variant once its
// fill ratio crosses denseFillRatioThreshold. Only ever makes sparse ->
// dense transitions; it never reverses one, since columns only fill in
// further during reduction.
func (m *Matrix) maybeDensify() {
	if _, ok := m.core.(*sparseBacking); !ok {
		return
	}
	if m.core.fillRatio() < denseFillRatioThreshold {
		return
	}
	pairs := m.core.toPairs()
	m.core = denseBackingFromPairs(m.core.nrows(), m.core.ncols(), pairs)
}

// Reduce performs the standard persistence reduction: repeatedly add the
// column already known to share a column's lowest 1 into that column, using
// a row -> column cache, until every nonempty column has a distinct lowest
// row. It returns the (col, colAdded) pairs in the order they were applied,
// for building the inverse add-record matrix.
func (m *Matrix) Reduce() [][2]int32 {
	adds := make([][2]int32, 0)
	colWithLow := make([]int32, m.core.nrows())
	for i := range colWithLow {
		colWithLow[i] = math.MaxInt32
	}

	for c := int32(0); c < m.core.ncols(); c++ {
		for {
			maxInCol, ok := m.ColMax(c)
			if !ok {
				break
			}
			colToAdd := colWithLow[maxInCol]
			if colToAdd == math.MaxInt32 {
				colWithLow[maxInCol] = c
				break
			}
			adds = append(adds, [2]int32{c, colToAdd})
			m.AddCols(c, colToAdd)
			m.maybeDensify()
		}
	}
	return adds
}
