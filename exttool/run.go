package exttool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"
)

const defaultGracePeriod = 5 * time.Second

// Run executes cmd and waits for it to finish. Cancelling the context sends
// SIGTERM to the tool's process group; anything still alive after the grace
// period gets SIGKILL.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, fmt.Errorf("exttool: binary is required")
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec // running caller-supplied tools is the point
	c.Dir = cmd.Dir
	c.Env = environment(cmd.Env)
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	// The tool gets its own process group so termination reaches any
	// children it spawned.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = cmd.GracePeriod
	if c.WaitDelay == 0 {
		c.WaitDelay = defaultGracePeriod
	}

	start := time.Now()
	runErr := c.Run()

	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	// ProcessState stays nil when the tool never started.
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}

	switch {
	case runErr == nil:
		return res, nil
	case ctx.Err() != nil:
		// Cancellation is the normal way to stop a tool mid-run.
		return res, fmt.Errorf("exttool: %s stopped: %w", cmd.Binary, ctx.Err())
	default:
		return res, fmt.Errorf("exttool: %s exited with code %d: %w", cmd.Binary, res.ExitCode, runErr)
	}
}

// environment appends extra key=value pairs to the parent environment. With
// no extras the child inherits the parent environment as-is.
func environment(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	return append(os.Environ(), extra...)
}
