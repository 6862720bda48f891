// Package bitmat provides the lazily-permuted GF(2) sparse/dense matrix and
// the index permutation it is built on, shared by homology reduction and the
// vineyards update.
package bitmat

import "sort"

// Permutation is a bijection on {0, ..., n-1} represented as a forwards and
// a backwards array, kept in sync on every mutation.
type Permutation struct {
	fwd []int32
	bwd []int32
}

// Identity returns the identity permutation on n elements.
func Identity(n int32) *Permutation {
	fwd := make([]int32, n)
	bwd := make([]int32, n)
	for i := int32(0); i < n; i++ {
		fwd[i] = i
		bwd[i] = i
	}
	return &Permutation{fwd: fwd, bwd: bwd}
}

// FromForwards builds a permutation from an explicit forwards array,
// deriving the backwards array by inversion.
func FromForwards(fwd []int32) *Permutation {
	bwd := make([]int32, len(fwd))
	for i, f := range fwd {
		bwd[f] = int32(i)
	}
	return &Permutation{fwd: append([]int32(nil), fwd...), bwd: bwd}
}

// FromOrd builds the permutation that takes "ordered" indices to "original"
// indices: Map(i) is the position in es of the i-th smallest element under
// less. Ties keep the original relative order (stable sort).
func FromOrd[T any](es []T, less func(a, b T) bool) *Permutation {
	idx := make([]int32, len(es))
	for i := range idx {
		idx[i] = int32(i)
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return less(es[idx[i]], es[idx[j]])
	})
	return FromForwards(idx)
}

// FromTo returns the permutation p such that p.Map(a.Map(i)) == b.Map(i) for
// every i.
func FromTo(a, b *Permutation) *Permutation {
	n := a.Len()
	fwd := make([]int32, n)
	for i := int32(0); i < int32(n); i++ {
		fwd[a.Map(i)] = b.Map(i)
	}
	return FromForwards(fwd)
}

// Len returns the number of elements permuted.
func (p *Permutation) Len() int { return len(p.fwd) }

// Map returns the forwards image of a.
func (p *Permutation) Map(a int32) int32 { return p.fwd[a] }

// Inv returns the backwards image of a.
func (p *Permutation) Inv(a int32) int32 { return p.bwd[a] }

// PushN extends the permutation with n freshly-identity-mapped slots.
func (p *Permutation) PushN(n int32) {
	off := int32(len(p.fwd))
	for i := int32(0); i < n; i++ {
		p.fwd = append(p.fwd, off+i)
		p.bwd = append(p.bwd, off+i)
	}
}

// Reverse swaps the forwards and backwards roles of the permutation.
func (p *Permutation) Reverse() {
	p.fwd, p.bwd = p.bwd, p.fwd
}

// Swap exchanges the images of a and b, keeping the inverse consistent.
func (p *Permutation) Swap(a, b int32) {
	p.fwd[a], p.fwd[b] = p.fwd[b], p.fwd[a]
	p.bwd[p.fwd[a]], p.bwd[p.fwd[b]] = p.bwd[p.fwd[b]], p.bwd[p.fwd[a]]
}

// Forwards returns the underlying forwards array. Callers must not mutate
// the returned slice.
func (p *Permutation) Forwards() []int32 { return p.fwd }

// Backwards returns the underlying backwards array. Callers must not mutate
// the returned slice.
func (p *Permutation) Backwards() []int32 { return p.bwd }

// Clone returns an independent deep copy of p.
func (p *Permutation) Clone() *Permutation {
	return &Permutation{fwd: append([]int32(nil), p.fwd...), bwd: append([]int32(nil), p.bwd...)}
}

// MemUsage estimates the bytes retained by the permutation's backing arrays.
func (p *Permutation) MemUsage() uintptr {
	const sz = 4 // int32
	return uintptr(cap(p.fwd)+cap(p.bwd)) * sz
}
