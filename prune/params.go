// Package prune filters the transpositions a vineyards Step reports down to
// the subset that actually represents medial-axis structure, by removing
// swaps between simplices that are spatially close, share a face or
// coface, or whose homology classes are too short-lived to matter.
package prune

// Param configures which prune passes apply to one dimension's swaps, and
// their thresholds. The zero value runs no pruning.
type Param struct {
	Euclidean            bool     `json:"euclidean"`
	EuclideanDistance    *float64 `json:"euclidean_distance,omitempty"`
	Coface               bool     `json:"coface"`
	Face                 bool     `json:"face"`
	Persistence          bool     `json:"persistence"`
	PersistenceThreshold *float64 `json:"persistence_threshold,omitempty"`
}

func f64(v float64) *float64 { return &v }

// DefaultParams returns the standard per-dimension pruning configuration:
// dimension 0 prunes by euclidean distance and shared coface, dimension 1
// by euclidean distance, shared face and persistence, dimension 2 by
// euclidean distance and shared face only.
func DefaultParams() [3]Param {
	return [3]Param{
		{
			Euclidean:         true,
			EuclideanDistance: f64(0.01),
			Coface:            true,
			Face:              false,
			Persistence:       false,
		},
		{
			Euclidean:            true,
			EuclideanDistance:    f64(0.01),
			Coface:               false,
			Face:                 true,
			Persistence:          true,
			PersistenceThreshold: f64(0.01),
		},
		{
			Euclidean:         true,
			EuclideanDistance: f64(0.01),
			Coface:            false,
			Face:              true,
			Persistence:       false,
		},
	}
}
