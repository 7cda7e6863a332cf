package exttool

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asterion-dev/pipekit/param"
	"github.com/asterion-dev/pipekit/processor"
	"github.com/asterion-dev/pipekit/resilience"
)

// Tool describes an external command exposed as a pipeline processor.
type Tool struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments. A "{name}" placeholder expands
	// to the step parameter of that name at execution time.
	Args []string
	// Dir is the working directory.
	Dir string
	// Env is additional environment variables (key=value).
	Env []string
	// Timeout bounds one execution. Zero means no timeout.
	Timeout time.Duration
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	GracePeriod time.Duration
	// Retry, when set, re-runs a failed tool before giving up.
	Retry *resilience.RetryConfig
}

// NewProcessor wraps the tool as a pipeline processor. A payload wired to
// the "stdin" port (string or []byte) feeds the tool's standard input, and
// the captured standard output publishes as a string on "stdout". A
// non-zero exit fails the instance with the tool's stderr attached.
func NewProcessor(id string, tool Tool) processor.Processor {
	return processor.Func(id, func(ctx context.Context, exec *processor.Exec) error {
		var stdin []byte
		if v, ok := exec.Input("stdin"); ok {
			switch x := v.(type) {
			case string:
				stdin = []byte(x)
			case []byte:
				stdin = x
			default:
				return fmt.Errorf("input %q carries %T, want string or []byte", "stdin", v)
			}
		}

		parent := ctx
		if tool.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, tool.Timeout)
			defer cancel()
		}

		// The command is rebuilt per attempt so retries get a fresh
		// stdin reader.
		run := func() (*Result, error) {
			cmd := Command{
				Binary:      tool.Binary,
				Args:        expandArgs(tool.Args, exec.Params),
				Dir:         tool.Dir,
				Env:         tool.Env,
				GracePeriod: tool.GracePeriod,
			}
			if stdin != nil {
				cmd.Stdin = bytes.NewReader(stdin)
			}
			return Run(ctx, cmd)
		}

		var res *Result
		var err error
		if tool.Retry != nil {
			res, err = resilience.Retry(ctx, *tool.Retry, run)
		} else {
			res, err = run()
		}
		if err != nil {
			// A tool-local timeout is an execution failure of this
			// instance, not a cancellation of the whole run.
			if parent.Err() == nil && ctx.Err() != nil {
				err = fmt.Errorf("exttool: %s timed out after %s", tool.Binary, tool.Timeout)
			}
			if res != nil && len(res.Stderr) > 0 {
				return fmt.Errorf("%w; stderr: %s", err, stderrTail(res.Stderr))
			}
			return err
		}
		return exec.Set("stdout", string(res.Stdout))
	})
}

// expandArgs substitutes "{name}" placeholders with parameter values.
func expandArgs(args []string, params param.Map) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a
		for name, v := range params {
			out[i] = strings.ReplaceAll(out[i], "{"+name+"}", v.String())
		}
	}
	return out
}

// stderrTail trims captured stderr to a loggable size.
func stderrTail(stderr []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(stderr))
	if len(s) > limit {
		return "..." + s[len(s)-limit:]
	}
	return s
}
