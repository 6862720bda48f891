// Package geom provides the 3D point/vector arithmetic shared by the
// simplicial complex and the query grid.
package geom

import "math"

// Vec is a point or displacement in 3-space.
type Vec [3]float64

// X returns the first component.
func (v Vec) X() float64 { return v[0] }

// Y returns the second component.
func (v Vec) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec) Z() float64 { return v[2] }

// Add returns v+w.
func (v Vec) Add(w Vec) Vec {
	return Vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v scaled by s.
func (v Vec) Scale(s float64) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s}
}

// Dist2 returns the squared Euclidean distance between v and w.
func (v Vec) Dist2(w Vec) float64 {
	d := v.Sub(w)
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	return math.Sqrt(v.Dist2(w))
}

// Min returns the componentwise minimum of v and w.
func (v Vec) Min(w Vec) Vec {
	return Vec{math.Min(v[0], w[0]), math.Min(v[1], w[1]), math.Min(v[2], w[2])}
}

// Max returns the componentwise maximum of v and w.
func (v Vec) Max(w Vec) Vec {
	return Vec{math.Max(v[0], w[0]), math.Max(v[1], w[1]), math.Max(v[2], w[2])}
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max Vec
}

// Span returns the per-axis extent of the box.
func (b Box) Span() Vec {
	return b.Max.Sub(b.Min)
}

// Mid returns the center of the box.
func (b Box) Mid() Vec {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}
