package process

import "time"

// Status is the lifecycle state of a process instance.
type Status string

const (
	// StatusPending means the instance is waiting for its inputs.
	StatusPending Status = "pending"
	// StatusRunning means the processor is executing.
	StatusRunning Status = "running"
	// StatusCompleted means execution succeeded and outputs are published.
	StatusCompleted Status = "completed"
	// StatusFailed means execution failed; dependents will never become ready.
	StatusFailed Status = "failed"
	// StatusCancelled means the instance was withdrawn before it started.
	StatusCancelled Status = "cancelled"
	// StatusPaused and StatusResumed are reserved for interactive control;
	// the automatic scheduling loop never enters them.
	StatusPaused  Status = "paused"
	StatusResumed Status = "resumed"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusRunning, StatusCancelled},
	StatusRunning: {StatusCompleted, StatusFailed, StatusPaused},
	StatusPaused:  {StatusResumed},
	StatusResumed: {StatusRunning},
}

// CanTransition reports whether moving from s to the given status is legal.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether the status ends the instance lifecycle.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// StatusChange is one entry in an instance's append-only history.
type StatusChange struct {
	From Status
	To   Status
	At   time.Time
}
