package manipulator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/denismitr/voodoo/internal/errs"
)

// ValidationError collects every invalid recipe segment, keyed by field name.
type ValidationError struct {
	errors map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{errors: make(map[string]string)}
}

func (err *ValidationError) Add(k, v string) {
	err.errors[k] = v
}

func (err *ValidationError) Empty() bool {
	return len(err.errors) == 0
}

func (err *ValidationError) Error() string {
	keys := make([]string, 0, len(err.errors))
	for k := range err.errors {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, err.errors[k]))
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

func (err *ValidationError) Errors() map[string]string {
	return err.errors
}

// Unwrap lets errors.Is match ErrArgument.
func (err *ValidationError) Unwrap() error {
	return errs.ErrArgument
}
