package errors

// Code represents a machine-readable error code.
type Code string

// Pre-loop errors (fatal)
const (
	// CodeConfiguration indicates an invalid pipeline definition or
	// unresolvable parameter set.
	CodeConfiguration Code = "configuration"
	// CodeResourceCreation indicates a compute resource could not be
	// allocated.
	CodeResourceCreation Code = "resource_creation"
)

// Execution errors (contained to one instance)
const (
	// CodeProcessorNotFound indicates no processor is registered under the
	// requested id. Instances in this state stay pending forever.
	CodeProcessorNotFound Code = "processor_not_found"
	// CodeMissingInput indicates a required input did not resolve at
	// execution time.
	CodeMissingInput Code = "missing_input"
	// CodeExecutionFailed indicates the processor reported a failure.
	CodeExecutionFailed Code = "execution_failed"
	// CodeOutputUnset indicates a processor returned success but left a
	// declared output empty.
	CodeOutputUnset Code = "output_unset"
	// CodeInvalidParameter indicates a parameter value was rejected by the
	// processor.
	CodeInvalidParameter Code = "invalid_parameter"
)

// Runtime errors
const (
	// CodeIterationCeiling indicates the scheduling loop did not settle
	// within its iteration bound.
	CodeIterationCeiling Code = "iteration_ceiling"
	// CodeInternal indicates a broken invariant inside the runtime.
	CodeInternal Code = "internal"
)

var fatalCodes = map[Code]bool{
	CodeConfiguration:     true,
	CodeResourceCreation:  true,
	CodeIterationCeiling:  true,
	CodeInternal:          true,
	CodeProcessorNotFound: false,
}

// IsFatalCode returns true if the error code aborts the whole run.
func IsFatalCode(code Code) bool {
	return fatalCodes[code]
}
