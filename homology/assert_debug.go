//go:build matdebug

package homology

import "github.com/mars-project/medax/simplicial"

// assertOrdering checks, for every simplex above dimension 0, that none of
// its boundary simplices has a strictly greater filtration value than it
// does itself (the filtration is the max over the boundary, so it can
// never be less). Only compiled into matdebug builds, since it walks every
// simplex's boundary and is too costly to run on every reduction in
// production.
func (red *Reduction) assertOrdering(c *simplicial.Complex) error {
	kp := [3]float64{red.KeyPoint.X(), red.KeyPoint.Y(), red.KeyPoint.Z()}
	for dim := 1; dim < 3; dim++ {
		ownValue := make([]float64, len(c.SimplicesPerDim[dim]))
		for id := range c.SimplicesPerDim[dim] {
			ownValue[id] = c.SimplexEnteringValue(dim, int32(id), kp)
		}
		for id, s := range c.SimplicesPerDim[dim] {
			for _, b := range s.Boundary {
				if c.SimplexEnteringValue(dim-1, b, kp) > ownValue[id] {
					return &InvariantViolation{
						Dim:    dim,
						Detail: "a boundary simplex has a greater filtration value than the simplex it bounds",
					}
				}
			}
		}
	}
	return nil
}
