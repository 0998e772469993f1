// internal/matching/errors.go
package matching

import "fmt"

// InvalidInputError reports a structural problem with a profile or
// internship document, such as requirements given as a string instead of a list.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}
