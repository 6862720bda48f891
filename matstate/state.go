package matstate

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/mars-project/medax/geom"
	"github.com/mars-project/medax/grid"
	"github.com/mars-project/medax/homology"
	"github.com/mars-project/medax/simplicial"
	"github.com/mars-project/medax/vineyard"
)

type simplexDTO struct {
	Coords   *geom.Vec `cbor:"coords,omitempty"`
	Boundary []int32   `cbor:"boundary"`
}

type complexDTO struct {
	Vertices  []simplexDTO `cbor:"vertices"`
	Edges     []simplexDTO `cbor:"edges"`
	Triangles []simplexDTO `cbor:"triangles"`
}

func toComplexDTO(c *simplicial.Complex) complexDTO {
	toDTOs := func(dim int) []simplexDTO {
		ss := c.SimplicesPerDim[dim]
		out := make([]simplexDTO, len(ss))
		for i, s := range ss {
			out[i] = simplexDTO{Coords: s.Coords, Boundary: s.Boundary}
		}
		return out
	}
	return complexDTO{
		Vertices:  toDTOs(0),
		Edges:     toDTOs(1),
		Triangles: toDTOs(2),
	}
}

func fromComplexDTO(d complexDTO) *simplicial.Complex {
	fromDTOs := func(ds []simplexDTO) []simplicial.Simplex {
		out := make([]simplicial.Simplex, len(ds))
		for i, s := range ds {
			out[i] = simplicial.Simplex{ID: int32(i), Coords: s.Coords, Boundary: s.Boundary}
		}
		return out
	}
	return &simplicial.Complex{
		SimplicesPerDim: [3][]simplicial.Simplex{
			fromDTOs(d.Vertices),
			fromDTOs(d.Edges),
			fromDTOs(d.Triangles),
		},
	}
}

type regularDTO struct {
	Corner geom.Vec `cbor:"corner"`
	Step   float64  `cbor:"step"`
	Shape  [3]int   `cbor:"shape"`
}

type meshDTO struct {
	Points    []geom.Vec  `cbor:"points"`
	Neighbors [][]int     `cbor:"neighbors"`
	DimDist   *[3]float64 `cbor:"dim_dist,omitempty"`
}

// Core is the complex and query grid a run is defined over: the part of the
// state that doesn't depend on which key points have been visited yet.
type Core struct {
	Complex *simplicial.Complex
	// Exactly one of Regular or Mesh is set.
	Regular *grid.Regular
	Mesh    *grid.Mesh
}

type coreDTO struct {
	Complex complexDTO  `cbor:"complex"`
	Regular *regularDTO `cbor:"regular,omitempty"`
	Mesh    *meshDTO    `cbor:"mesh,omitempty"`
}

func toCoreDTO(c *Core) (coreDTO, error) {
	dto := coreDTO{Complex: toComplexDTO(c.Complex)}
	switch {
	case c.Regular != nil:
		dto.Regular = &regularDTO{Corner: c.Regular.Corner, Step: c.Regular.Step, Shape: [3]int(c.Regular.Shape)}
	case c.Mesh != nil:
		dto.Mesh = &meshDTO{Points: c.Mesh.Points, Neighbors: c.Mesh.Neighbors, DimDist: c.Mesh.DimDist}
	default:
		return coreDTO{}, fmt.Errorf("matstate: Core has neither Regular nor Mesh grid set")
	}
	return dto, nil
}

func fromCoreDTO(dto coreDTO) (*Core, error) {
	core := &Core{Complex: fromComplexDTO(dto.Complex)}
	switch {
	case dto.Regular != nil:
		core.Regular = grid.NewRegular(dto.Regular.Corner, dto.Regular.Step, grid.Index(dto.Regular.Shape))
	case dto.Mesh != nil:
		core.Mesh = &grid.Mesh{Points: dto.Mesh.Points, Neighbors: dto.Mesh.Neighbors, DimDist: dto.Mesh.DimDist}
	default:
		return nil, fmt.Errorf("matstate: decoded Core has neither Regular nor Mesh grid set")
	}
	return core, nil
}

// EncodeCore serializes a Core to CBOR.
func EncodeCore(c *Core) ([]byte, error) {
	dto, err := toCoreDTO(c)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(dto)
}

// DecodeCore deserializes a Core from CBOR produced by EncodeCore.
func DecodeCore(data []byte) (*Core, error) {
	var dto coreDTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return fromCoreDTO(dto)
}

type stackDTO struct {
	D        matrixDTO      `cbor:"d"`
	R        matrixDTO      `cbor:"r"`
	Ut       matrixDTO      `cbor:"ut"`
	Ordering permutationDTO `cbor:"ordering"`
}

type reductionDTO struct {
	KeyPoint geom.Vec    `cbor:"key_point"`
	Stacks   [3]stackDTO `cbor:"stacks"`
}

func toReductionDTO(r *homology.Reduction) reductionDTO {
	var stacks [3]stackDTO
	for i := range r.Stacks {
		s := &r.Stacks[i]
		stacks[i] = stackDTO{
			D:        toMatrixDTO(s.D),
			R:        toMatrixDTO(s.R),
			Ut:       toMatrixDTO(s.Ut),
			Ordering: toPermutationDTO(s.Ordering),
		}
	}
	return reductionDTO{KeyPoint: r.KeyPoint, Stacks: stacks}
}

func fromReductionDTO(d reductionDTO) *homology.Reduction {
	var stacks [3]homology.Stack
	for i, s := range d.Stacks {
		stacks[i] = homology.Stack{
			D:        fromMatrixDTO(s.D),
			R:        fromMatrixDTO(s.R),
			Ut:       fromMatrixDTO(s.Ut),
			Ordering: fromPermutationDTO(s.Ordering),
		}
	}
	return &homology.Reduction{KeyPoint: d.KeyPoint, Stacks: stacks}
}

type swapDTO struct {
	Dim int   `cbor:"dim"`
	I   int32 `cbor:"i"`
	J   int32 `cbor:"j"`
}

type transitionDTO struct {
	From  [3]int    `cbor:"from"`
	To    [3]int    `cbor:"to"`
	Swaps []swapDTO `cbor:"swaps"`
}

type reductionEntryDTO struct {
	Index     [3]int       `cbor:"index"`
	Reduction reductionDTO `cbor:"reduction"`
}

// Vineyards is the result of a vineyards walk over a Core: every visited
// grid point's Reduction, plus the ordered transitions the walk took (each
// one the pruned-or-unpruned set of Swaps produced stepping between two
// neighboring points).
type Vineyards struct {
	Reductions  map[grid.Index]*homology.Reduction
	Transitions []grid.Transition
}

type vineyardsDTO struct {
	Reductions  []reductionEntryDTO `cbor:"reductions"`
	Transitions []transitionDTO     `cbor:"transitions"`
}

func toVineyardsDTO(v *Vineyards) vineyardsDTO {
	dto := vineyardsDTO{
		Reductions:  make([]reductionEntryDTO, 0, len(v.Reductions)),
		Transitions: make([]transitionDTO, len(v.Transitions)),
	}
	for idx, red := range v.Reductions {
		dto.Reductions = append(dto.Reductions, reductionEntryDTO{
			Index:     [3]int(idx),
			Reduction: toReductionDTO(red),
		})
	}
	for i, t := range v.Transitions {
		swaps := make([]swapDTO, len(t.Swaps.V))
		for j, s := range t.Swaps.V {
			swaps[j] = swapDTO{Dim: s.Dim, I: s.I, J: s.J}
		}
		dto.Transitions[i] = transitionDTO{From: [3]int(t.From), To: [3]int(t.To), Swaps: swaps}
	}
	return dto
}

func fromVineyardsDTO(dto vineyardsDTO) *Vineyards {
	out := &Vineyards{
		Reductions:  make(map[grid.Index]*homology.Reduction, len(dto.Reductions)),
		Transitions: make([]grid.Transition, len(dto.Transitions)),
	}
	for _, e := range dto.Reductions {
		out.Reductions[grid.Index(e.Index)] = fromReductionDTO(e.Reduction)
	}
	for i, t := range dto.Transitions {
		swaps := make([]vineyard.Swap, len(t.Swaps))
		for j, s := range t.Swaps {
			swaps[j] = vineyard.Swap{Dim: s.Dim, I: s.I, J: s.J}
		}
		out.Transitions[i] = grid.Transition{
			From:  grid.Index(t.From),
			To:    grid.Index(t.To),
			Swaps: &vineyard.Swaps{V: swaps},
		}
	}
	return out
}

// EncodeVineyards serializes a Vineyards to CBOR. Every matrix it touches
// has its permutations baked in as a side effect, matching the access
// pattern a later decode needs (baked matrices, not lazily-permuted ones).
func EncodeVineyards(v *Vineyards) ([]byte, error) {
	return cbor.Marshal(toVineyardsDTO(v))
}

// DecodeVineyards deserializes a Vineyards from CBOR produced by
// EncodeVineyards.
func DecodeVineyards(data []byte) (*Vineyards, error) {
	var dto vineyardsDTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return fromVineyardsDTO(dto), nil
}

// State bundles a Core with the Vineyards walk computed over it, the unit
// the CLI reads and writes as a single file.
type State struct {
	Core      *Core
	Vineyards *Vineyards
}

type stateDTO struct {
	Core      coreDTO      `cbor:"core"`
	Vineyards vineyardsDTO `cbor:"vineyards"`
}

// EncodeState serializes a State to CBOR.
func EncodeState(s *State) ([]byte, error) {
	coreDTOv, err := toCoreDTO(s.Core)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(stateDTO{Core: coreDTOv, Vineyards: toVineyardsDTO(s.Vineyards)})
}

// DecodeState deserializes a State from CBOR produced by EncodeState.
func DecodeState(data []byte) (*State, error) {
	var dto stateDTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	core, err := fromCoreDTO(dto.Core)
	if err != nil {
		return nil, err
	}
	return &State{Core: core, Vineyards: fromVineyardsDTO(dto.Vineyards)}, nil
}
