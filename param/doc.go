// Package param provides the parameter value primitives shared by step
// definitions, process instances, and processor plug-ins.
//
// A Value is a tagged union over the three parameter kinds a pipeline
// definition can carry: integers, floating-point numbers, and strings.
// Values are immutable; a Map binds parameter names to values.
package param
