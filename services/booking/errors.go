package booking

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned by the resolver when auto-assignment finds no
// eligible provider at all. Discovery itself reports this condition as an
// empty list, not an error.
var ErrNoCandidates = errors.New("no eligible providers matched the request")

// ValidationError reports a malformed booking request. It is raised before
// any discovery strategy runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking request: %s: %s", e.Field, e.Message)
}

// SelectionInvalidError reports that an explicit provider selection failed
// eligibility or ownership validation. The engine never downgrades this to
// auto-assignment: a rejected selection fails the whole request.
type SelectionInvalidError struct {
	Field   string
	Message string
}

func (e *SelectionInvalidError) Error() string {
	return fmt.Sprintf("invalid provider selection: %s: %s", e.Field, e.Message)
}

// IsSelectionInvalid reports whether err is a SelectionInvalidError.
func IsSelectionInvalid(err error) bool {
	var sel *SelectionInvalidError
	return errors.As(err, &sel)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var val *ValidationError
	return errors.As(err, &val)
}
