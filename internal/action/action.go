// Package action provides abstractions for the external effect the loop
// supervisor invokes once per tick.
package action

import (
	"context"
	"time"
)

// Status classifies the result of one Action invocation.
type Status int

const (
	// StatusSuccess means the action completed with exit code 0.
	StatusSuccess Status = iota

	// StatusFailure means the action ran but returned a non-zero exit code.
	StatusFailure

	// StatusTimeout means the action exceeded its configured timeout and
	// was killed.
	StatusTimeout

	// StatusError means the action could not be invoked at all
	// (e.g. the binary is missing).
	StatusError
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	case StatusTimeout:
		return "timeout"
	case StatusError:
		return "invocation_error"
	default:
		return "unknown"
	}
}

// Failed returns true for every status that counts as a failure in the
// loop accounting (everything except success).
func (s Status) Failed() bool {
	return s != StatusSuccess
}

// Outcome captures the classified result of one Action invocation.
// It is produced fresh each tick and consumed immediately by the
// supervisor's accumulator and logger.
type Outcome struct {
	Status   Status
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Action is the repeatable external effect driven by the supervisor.
// Implementations must never panic or return past the supervisor boundary:
// every failure mode is folded into the returned Outcome.
type Action interface {
	// Invoke performs one external call. A timeout of 0 means no limit.
	// Invoke returns within the timeout or classifies the result as
	// StatusTimeout after killing the pending process.
	Invoke(ctx context.Context, timeout time.Duration) Outcome

	// Name returns a short human-readable name for this action type.
	Name() string

	// CommandString returns the command that would be executed
	// (for --print-cmd and debugging).
	CommandString() string
}
