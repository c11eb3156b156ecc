package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingFields is the sentinel behind every required-field failure.
var ErrMissingFields = errors.New("please fill in all required fields")

// Field is a named form value paired with whether it was provided.
type Field struct {
	Name    string
	Present bool
}

// Text returns a Field that is present when s has non-blank content.
func Text(name, s string) Field {
	return Field{Name: name, Present: strings.TrimSpace(s) != ""}
}

// Required returns an error naming every absent field, in the order given.
// The error wraps ErrMissingFields.
func Required(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing %s", ErrMissingFields, strings.Join(missing, ", "))
}
