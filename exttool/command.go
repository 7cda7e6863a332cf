// Package exttool runs external commands on behalf of pipeline steps. It
// captures tool output, merges environments, and terminates stuck tools
// cleanly: SIGTERM to the process group on cancellation, SIGKILL once the
// grace period runs out.
package exttool

import (
	"io"
	"time"
)

// Command is a single invocation of an external tool.
type Command struct {
	// Binary names the executable, resolved via PATH when not a path.
	Binary string
	// Args are passed to the tool verbatim.
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env holds extra key=value pairs appended to the parent environment.
	Env []string
	// Stdin, when non-nil, feeds the tool's standard input.
	Stdin io.Reader
	// GracePeriod is how long a terminated tool gets to exit on its own
	// before it is killed. Zero means the package default.
	GracePeriod time.Duration
}
