package bitmat

import "fmt"

// SingularMatrixError is a programming fault: Gauss-Jordan elimination found
// a column with no pivot candidate. The caller passed in a matrix that was
// not full rank, which should never happen for a boundary-derived add
// matrix.
type SingularMatrixError struct {
	Col int32
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("bitmat: matrix is not full rank at column %d", e.Col)
}

// OverflowError reports that a matrix dimension would exceed the backing
// index type's range.
type OverflowError struct {
	Op string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("bitmat: overflow during %s", e.Op)
}
