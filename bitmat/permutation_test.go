package bitmat

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func testInverse(t *testing.T, p *Permutation) {
	t.Helper()
	for i := int32(0); i < int32(p.Len()); i++ {
		assert.Equal(t, i, p.Inv(p.Map(i)))
		assert.Equal(t, i, p.Map(p.Inv(i)))
	}
}

func TestPermutationSwap(t *testing.T) {
	p := Identity(10)
	for i := int32(0); i < int32(p.Len()); i++ {
		assert.Equal(t, i, p.Map(i))
	}
	testInverse(t, p)

	p.Swap(2, 3)
	assert.Equal(t, []int32{0, 1, 3, 2}, firstN(p, 4))
	assert.Equal(t, int32(0), p.Inv(0))
	assert.Equal(t, int32(1), p.Inv(1))
	assert.Equal(t, int32(3), p.Inv(2))
	assert.Equal(t, int32(2), p.Inv(3))
	testInverse(t, p)

	p.Swap(1, 2)
	assert.Equal(t, []int32{0, 3, 1, 2}, firstN(p, 4))
	assert.Equal(t, int32(0), p.Inv(0))
	assert.Equal(t, int32(2), p.Inv(1))
	assert.Equal(t, int32(3), p.Inv(2))
	assert.Equal(t, int32(1), p.Inv(3))
	testInverse(t, p)
}

func firstN(p *Permutation, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = p.Map(int32(i))
	}
	return out
}

func TestPermutationFromOrd(t *testing.T) {
	v := []rune{'d', 'a', 'b', 'e', 'c'}
	p := FromOrd(v, func(a, b rune) bool { return a < b })

	for i := int32(0); i < int32(p.Len())-1; i++ {
		assert.LessOrEqual(t, v[p.Map(i)], v[p.Map(i+1)])
	}
	assert.Equal(t, int32(1), p.Map(0))
	assert.Equal(t, int32(2), p.Map(1))
	assert.Equal(t, int32(4), p.Map(2))
	assert.Equal(t, int32(0), p.Map(3))
	assert.Equal(t, int32(3), p.Map(4))
	testInverse(t, p)
}

func TestPermutationFromToAlreadyIdentity(t *testing.T) {
	a := FromForwards([]int32{0, 1, 2, 3, 4})
	b := FromForwards([]int32{3, 2, 0, 1, 4})
	p := FromTo(a, b)
	assert.Equal(t, []int32{3, 2, 0, 1, 4}, p.Forwards())
}

func TestPermutationFromToEqualInputs(t *testing.T) {
	a := FromForwards([]int32{2, 4, 1, 0, 3})
	b := FromForwards([]int32{2, 4, 1, 0, 3})
	p := FromTo(a, b)
	assert.Equal(t, []int32{0, 1, 2, 3, 4}, p.Forwards())
}

func TestPermutationFromToWorkedExample(t *testing.T) {
	a := FromForwards([]int32{2, 1, 4, 0, 3})
	b := FromForwards([]int32{3, 2, 0, 4, 1})
	p := FromTo(a, b)
	// i=0: a[0]=2,b[0]=3 -> p[2]=3
	// i=1: a[1]=1,b[1]=2 -> p[1]=2
	// i=2: a[2]=4,b[2]=0 -> p[4]=0
	// i=3: a[3]=0,b[3]=4 -> p[0]=4
	// i=4: a[4]=3,b[4]=1 -> p[3]=1
	assert.Equal(t, []int32{4, 2, 3, 1, 0}, p.Forwards())
}

// TestPermutationIsBijection checks, for randomly-built permutations via
// repeated adjacent swaps, that the forwards/backwards arrays stay a
// consistent bijection, per spec.md's invariant for Permutation.
func TestPermutationIsBijection(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("swap sequences preserve the bijection invariant", prop.ForAll(
		func(swaps []uint8) bool {
			const n = 12
			p := Identity(n)
			for _, s := range swaps {
				a := int32(s) % (n - 1)
				p.Swap(a, a+1)
			}
			seen := make([]bool, n)
			for i := int32(0); i < n; i++ {
				m := p.Map(i)
				if seen[m] {
					return false
				}
				seen[m] = true
				if p.Inv(m) != i {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt8Range(0, 10)),
	))

	properties.TestingRun(t)
}
