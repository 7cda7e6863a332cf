// Package pipetest provides test doubles for pipeline tests: a mock
// processor with preset outputs and call counting, and a fluent builder
// for assembling pipeline definitions without YAML.
package pipetest
