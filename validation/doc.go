// Package validation provides input validation for pipeline definitions.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Either way a failure is a
// fatal configuration Error.
//
// # Struct Tag Validation
//
//	type Step struct {
//	    ID        string `yaml:"id" validate:"required"`
//	    Processor string `yaml:"processor" validate:"required"`
//	}
//	err := validation.Validate(step)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Check(step.ID != "", "id", "is required")
//	v.Check(len(step.Outputs) > 0, "outputs", "step declares no outputs")
//	if appErr := v.Validate(); appErr != nil {
//	    return appErr
//	}
package validation
