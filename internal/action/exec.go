package action

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"
)

// invoke runs a single external command, capturing stdout/stderr and
// classifying the result. All failure modes surface as an Outcome, never as
// an error the caller has to handle.
func invoke(ctx context.Context, timeout time.Duration, binary string, args []string) Outcome {
	runCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Own process group so a timed-out command and any children it spawned
	// are killed and reaped together, not just the direct child.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	cmd.Cancel = func() error {
		if pgid, err := syscall.Getpgid(cmd.Process.Pid); err == nil {
			return syscall.Kill(-pgid, syscall.SIGKILL)
		}
		return cmd.Process.Kill()
	}
	// Bound the wait for output-pipe drainage in case a grandchild keeps
	// the pipes open after the kill.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	outcome := Outcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: elapsed,
	}

	switch {
	case err == nil:
		outcome.Status = StatusSuccess
		outcome.ExitCode = 0

	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		outcome.Status = StatusTimeout
		outcome.ExitCode = -1

	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			outcome.Status = StatusFailure
			outcome.ExitCode = extractExitCode(err)
		} else {
			// The command could not be launched at all.
			outcome.Status = StatusError
			outcome.ExitCode = -1
			outcome.Stderr = err.Error()
		}
	}

	return outcome
}

// extractExitCode extracts the exit code from a Run() error.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				// Signal exit: 128 + signal number
				return 128 + int(status.Signal())
			}
			return status.ExitStatus()
		}
	}

	// Unknown error, assume exit code 1
	return 1
}
