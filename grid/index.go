// Package grid provides two ways of walking a complex's query points across
// space while reusing each step's vineyards update: a regular lattice
// (Regular) traversed breadth-first, and an explicit mesh of neighbors
// (Mesh) traversed depth-first, for grids that aren't axis-aligned boxes.
package grid

import (
	"fmt"

	"github.com/mars-project/medax/vineyard"
)

// Index addresses a cell of a Regular grid, or — for a Mesh, which has no
// natural 3D coordinate of its own — a point by its flat slice position
// stashed in the first component.
type Index [3]int

// FakeIndex wraps a flat point index so Mesh can reuse Index-keyed maps the
// same way Regular does.
func FakeIndex(n int) Index { return Index{n, 0, 0} }

func (i Index) X() int { return i[0] }
func (i Index) Y() int { return i[1] }
func (i Index) Z() int { return i[2] }

// Add returns the componentwise sum of i and o.
func (i Index) Add(o Index) Index {
	return Index{i[0] + o[0], i[1] + o[1], i[2] + o[2]}
}

func (i Index) String() string {
	return fmt.Sprintf("[%d, %d, %d]", i[0], i[1], i[2])
}

// Transition is one traversed edge of a grid: the vineyards swaps produced
// moving the query point from the cell/vertex From to the cell/vertex To.
type Transition struct {
	From, To Index
	Swaps    *vineyard.Swaps
}
