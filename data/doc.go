// Package data provides the wiring primitives of the pipeline runtime:
// data types, step link identifiers, links, records, and the concurrent
// Data Store that resolves dependencies between process instances.
//
// A Record is created once per declared output (a placeholder) or per seed
// input (instantiated immediately), gains its payload through the one-way
// Instantiate transition, and accumulates input links as consumers attach.
// Records are never deleted during a run; the Store copies records at its
// API boundary so no internal state escapes.
package data
