package vineyard

import "errors"

// ErrHomBirthFirstUnimplemented is returned by Step when called with
// requireHomBirthToBeFirst set: the "report only the first persistent
// cycle per dimension" restriction was never completed upstream, so rather
// than silently ignoring the flag, Step refuses it outright.
var ErrHomBirthFirstUnimplemented = errors.New("vineyard: requireHomBirthToBeFirst is not implemented")

// UnreachableCaseError is a programming fault: the transposition solver's
// four-way birth/death case analysis is meant to be exhaustive. Seeing this
// means a stack's R/U_t invariants were violated before the swap began.
type UnreachableCaseError struct {
	Detail string
}

func (e *UnreachableCaseError) Error() string {
	return "vineyard: unreachable transposition case: " + e.Detail
}
