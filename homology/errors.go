package homology

import "fmt"

// InvariantViolation is a programming fault: a debug-mode consistency check
// (assertOrdering) found the filtration ordering of a Reduction's stacks
// disagreed with the complex's own distances. This can only happen if a
// caller built or mutated a Reduction incorrectly.
type InvariantViolation struct {
	Dim    int
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("homology: ordering invariant violated at dim %d: %s", e.Dim, e.Detail)
}
