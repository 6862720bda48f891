package simplicial

import "errors"

// Sentinel errors for malformed OBJ input, in the style of
// katalvlaran-lvlath/gridgraph's package-level error-var block.
var (
	ErrEdgeWrongArity     = errors.New("simplicial: an edge (l) line must name exactly two vertices")
	ErrFaceWrongArity     = errors.New("simplicial: a face (f) line must name exactly three vertices")
	ErrDuplicateEdge      = errors.New("simplicial: duplicate edge entry in input")
	ErrCoincidentVertices = errors.New("simplicial: two vertices are coincident")
	ErrMissingField       = errors.New("simplicial: missing numeric field in OBJ line")
)

// TooManySimplicesError reports that a dimension's simplex count would
// overflow the int32 id space the rest of the pipeline relies on.
type TooManySimplicesError struct {
	Dim   int
	Count int
}

func (e *TooManySimplicesError) Error() string {
	return "simplicial: too many simplices of dimension"
}
