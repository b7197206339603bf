package validation

import (
	"strings"
)

// Errors is an ordered list of human-readable validation messages.
// A nil or empty list means the input passed.
type Errors []string

func (e Errors) Error() string {
	return strings.Join(e, "; ")
}

// Is makes errors.Is(err, validation.Errors{}) match any Errors value.
func (e Errors) Is(target error) bool {
	_, ok := target.(Errors)
	return ok
}

// AsErrors returns the Errors behind err, if any.
func AsErrors(err error) (Errors, bool) {
	verrs, ok := err.(Errors)
	return verrs, ok
}
