package validation

import (
	"fmt"
	"strings"

	"github.com/asterion-dev/pipekit/errors"
)

// FieldError is one violation, located by a dotted field path such as
// "steps.blur.inputs.image".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator accumulates field errors across semantic checks and folds them
// into one configuration error at the end, so a caller sees every problem
// with a definition in a single pass.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a violation against a field path.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// Check records a violation when the condition does not hold.
func (v *Validator) Check(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// HasErrors reports whether any violation was recorded.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the recorded violations in order.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate folds the recorded violations into a single fatal configuration
// error, or returns nil when there are none.
func (v *Validator) Validate() *errors.Error {
	if !v.HasErrors() {
		return nil
	}
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return errors.Configuration(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}
