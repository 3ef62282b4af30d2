package citation

import (
	"errors"
	"fmt"

	"github.com/matsen/refcite/internal/reference"
)

// ErrUnknownType is returned when no renderer is registered for a record type.
var ErrUnknownType = errors.New("no renderer for reference type")

// MissingFieldError reports a field required to render a full citation.
// It matches reference.ErrMissingField with errors.Is.
type MissingFieldError struct {
	Name  string // Record name
	Type  reference.Type
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s %q lacks %q", reference.ErrMissingField, e.Type, e.Name, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return reference.ErrMissingField
}
