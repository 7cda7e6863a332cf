package errors

import "fmt"

// Error is the unified pipeline error type.
type Error struct {
	// Code is a machine-readable error code.
	Code Code `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Fatal indicates whether the error aborts the whole run. Non-fatal
	// errors are recorded on the offending instance and never escape.
	Fatal bool `json:"fatal"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with fatality derived from the code.
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Fatal:   IsFatalCode(code),
	}
}

// --- Common Error Constructors ---

// Configuration creates a fatal Error for an invalid pipeline definition.
func Configuration(reason string) *Error {
	return &Error{
		Code: CodeConfiguration, Message: reason,
		Fatal: true,
	}
}

// ProcessorNotFound creates an Error for an unregistered processor id.
// It marks a permanently blocked instance, not an aborted run.
func ProcessorNotFound(processorID string) *Error {
	return &Error{
		Code: CodeProcessorNotFound, Message: fmt.Sprintf("No processor is registered under id %q.", processorID),
		Fatal:   false,
		Details: map[string]any{"processor_id": processorID},
	}
}

// MissingInput creates a non-fatal Error for an input that did not resolve
// at execution time.
func MissingInput(port string) *Error {
	return &Error{
		Code: CodeMissingInput, Message: fmt.Sprintf("Required input %q was not resolved.", port),
		Fatal:   false,
		Details: map[string]any{"port": port},
	}
}

// ExecutionFailed creates a non-fatal Error for a processor failure.
func ExecutionFailed(stepID string, cause error) *Error {
	return &Error{
		Code: CodeExecutionFailed, Message: fmt.Sprintf("Step %q failed during execution.", stepID),
		Fatal:   false,
		Details: map[string]any{"step_id": stepID}, Cause: cause,
	}
}

// OutputUnset creates a non-fatal Error for a declared output the processor
// left empty despite returning success.
func OutputUnset(port string) *Error {
	return &Error{
		Code: CodeOutputUnset, Message: fmt.Sprintf("Declared output %q was left unset.", port),
		Fatal:   false,
		Details: map[string]any{"port": port},
	}
}

// InvalidParameter creates a non-fatal Error for a parameter value the
// processor rejected.
func InvalidParameter(name, reason string) *Error {
	return &Error{
		Code: CodeInvalidParameter, Message: fmt.Sprintf("Invalid parameter %q: %s", name, reason),
		Fatal:   false,
		Details: map[string]any{"parameter": name},
	}
}

// ResourceCreation creates a fatal Error for a compute resource that could
// not be allocated.
func ResourceCreation(resource string, cause error) *Error {
	return &Error{
		Code: CodeResourceCreation, Message: fmt.Sprintf("Could not allocate %s.", resource),
		Fatal:   true,
		Details: map[string]any{"resource": resource}, Cause: cause,
	}
}

// IterationCeiling creates a fatal Error for a run that exceeded its
// scheduling iteration bound.
func IterationCeiling(limit int) *Error {
	return &Error{
		Code: CodeIterationCeiling, Message: fmt.Sprintf("Scheduling did not settle within %d iterations.", limit),
		Fatal:   true,
		Details: map[string]any{"limit": limit},
	}
}

// Internal creates a fatal Error for a broken runtime invariant.
func Internal(cause error) *Error {
	return &Error{
		Code: CodeInternal, Message: "An unexpected error occurred in the pipeline runtime.",
		Fatal: true, Cause: cause,
	}
}
