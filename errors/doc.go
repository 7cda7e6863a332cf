// Package errors provides unified error handling for the pipeline runtime.
// It implements structured error types with machine-readable codes and a
// fatal/non-fatal classification: fatal errors abort a run, non-fatal
// errors are contained to the process instance that raised them.
package errors
