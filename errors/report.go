package errors

import (
	"context"
	stderrors "errors"
)

// Report is the flattened error view embedded in run results and CLI output.
type Report struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Fatal   bool           `json:"fatal"`
	Details map[string]any `json:"details,omitempty"`
}

// Report converts an Error to its serializable view.
func (e *Error) Report() Report {
	return Report{
		Code:    e.Code,
		Message: e.Message,
		Fatal:   e.Fatal,
		Details: e.Details,
	}
}

// IsError checks if an error is a pipeline Error.
func IsError(err error) bool {
	var perr *Error
	return stderrors.As(err, &perr)
}

// AsError converts an error to a pipeline Error if possible.
func AsError(err error) (*Error, bool) {
	var perr *Error
	if stderrors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}

// IsFatal classifies an arbitrary error for run-abort purposes. A wrapped
// pipeline Error decides for itself; context cancellation always aborts;
// unclassified errors from processors are contained to their instance.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if perr, ok := AsError(err); ok {
		return perr.Fatal
	}
	return false
}
