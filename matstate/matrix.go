// Package matstate is the CBOR-encoded on-disk form of a complex, its query
// grid, and the vineyards state computed over it: everything a later run
// needs to resume pruning or stats without redoing the reduction.
package matstate

import "github.com/mars-project/medax/bitmat"

// matrixDTO is a baked-permutation matrix: its row/column order is already
// the logical one, so decoding never needs to reconstruct a Permutation
// alongside it.
type matrixDTO struct {
	Rows  int32      `cbor:"rows"`
	Cols  int32      `cbor:"cols"`
	Pairs [][2]int32 `cbor:"pairs"`
}

func toMatrixDTO(m *bitmat.Matrix) matrixDTO {
	m.BakeInPermutations()
	return matrixDTO{Rows: m.Rows(), Cols: m.Cols(), Pairs: m.ToPairs()}
}

func fromMatrixDTO(d matrixDTO) *bitmat.Matrix {
	return bitmat.FromPairs(d.Rows, d.Cols, d.Pairs)
}

// permutationDTO is a permutation's forwards array; the backwards array is
// always its inverse, so only one needs to round-trip.
type permutationDTO []int32

func toPermutationDTO(p *bitmat.Permutation) permutationDTO {
	return append(permutationDTO(nil), p.Forwards()...)
}

func fromPermutationDTO(d permutationDTO) *bitmat.Permutation {
	return bitmat.FromForwards([]int32(d))
}
