package exttool

import "time"

// Result captures what a finished tool produced.
type Result struct {
	// Stdout and Stderr hold the captured output streams in full.
	Stdout []byte
	Stderr []byte
	// ExitCode is -1 when the tool was killed or never started.
	ExitCode int
	// Duration measures from start to exit.
	Duration time.Duration
}
