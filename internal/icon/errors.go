package icon

import "fmt"

// ValidationError reports a caller-supplied attribute value outside its
// allowed range. It is returned before any mutation or render takes place.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
