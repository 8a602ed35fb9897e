package calendar

import (
	"errors"
	"fmt"
)

// ErrMissingReferenceStem is returned by Ten-God queries on a calendar
// built without a reference stem.
var ErrMissingReferenceStem = errors.New("no reference stem supplied")

// ValidationError reports an input field that could not be normalized.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}
