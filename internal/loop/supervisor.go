package loop

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/efenow/curloop/internal/action"
	"github.com/efenow/curloop/internal/stats"
)

// Callbacks contains optional callback functions for supervisor events.
// They are invoked synchronously from the loop thread.
type Callbacks struct {
	// OnTick is called at the start of each tick, before the invocation.
	OnTick func(iteration int64)

	// OnOutcome is called after each invocation with its classified outcome.
	OnOutcome func(iteration int64, o action.Outcome)
}

// Config holds configuration for creating a new Supervisor.
type Config struct {
	// Action is the external effect invoked once per tick. Required.
	Action action.Action

	// Interval is the pause between ticks. Must be >= 0.
	Interval time.Duration

	// MaxIterations bounds the number of invocations. 0 = unbounded.
	MaxIterations int64

	// Timeout bounds each invocation. 0 = no per-invocation timeout.
	Timeout time.Duration

	// SuccessOnly suppresses per-tick success lines (failures still log).
	SuccessOnly bool

	// Verbose echoes captured stdout for every outcome.
	Verbose bool

	Logger    *slog.Logger
	Tracker   *stats.Tracker
	Callbacks Callbacks
}

// Supervisor drives the tick loop: bound-check, invoke, classify, account,
// sleep. One supervisor runs one loop; it owns its config and state for its
// lifetime and guarantees the summary is produced exactly once.
//
// Cancellation is cooperative via the context passed to Run. The caller
// installs the process-wide signal handling (signal.NotifyContext); the
// supervisor itself never registers signal handlers, so multiple instances
// in one process do not interfere.
type Supervisor struct {
	action        action.Action
	interval      time.Duration
	maxIterations int64
	timeout       time.Duration
	successOnly   bool
	verbose       bool

	logger    *slog.Logger
	tracker   *stats.Tracker
	callbacks Callbacks

	// State management
	state     State
	stateMu   sync.RWMutex
	iteration int64

	summaryOnce sync.Once
	summary     *stats.Summary
}

// New creates a new Supervisor with the given configuration.
// It fails fast on configuration errors, before any tick runs.
func New(cfg Config) (*Supervisor, error) {
	if cfg.Action == nil {
		return nil, errors.New("action is required")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("interval must be >= 0")
	}
	if cfg.MaxIterations < 0 {
		return nil, errors.New("max iterations must be >= 1 when set")
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("timeout must be >= 0")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracker := cfg.Tracker
	if tracker == nil {
		tracker = stats.NewTracker()
	}

	return &Supervisor{
		action:        cfg.Action,
		interval:      cfg.Interval,
		maxIterations: cfg.MaxIterations,
		timeout:       cfg.Timeout,
		successOnly:   cfg.SuccessOnly,
		verbose:       cfg.Verbose,
		logger:        logger,
		tracker:       tracker,
		callbacks:     cfg.Callbacks,
		state:         StateCreated,
	}, nil
}

// Run drives the loop until the iteration bound is reached or ctx is
// cancelled. It blocks, and always returns the run summary exactly once:
// repeated calls return the same summary without looping again.
func (s *Supervisor) Run(ctx context.Context) *stats.Summary {
	s.summaryOnce.Do(func() {
		s.summary = s.run(ctx)
	})
	return s.summary
}

func (s *Supervisor) run(ctx context.Context) *stats.Summary {
	s.setState(StateRunning)
	defer s.setState(StateStopped)

	s.logStart()

	// A signal must not abort an in-flight invocation: the child is allowed
	// to finish within its own timeout bound, and the tick's accounting
	// completes before the loop exits.
	invokeCtx := context.WithoutCancel(ctx)

	for {
		// Cancellation checkpoint at the top of each tick.
		select {
		case <-ctx.Done():
			s.logger.Info("loop_stopping",
				"reason", "signal",
				"iterations", s.tracker.Invocations(),
			)
			return s.tracker.Summary()
		default:
		}

		s.iteration++

		// The counter increments before this check, so a prior tick can
		// push it past the bound and the loop ends here without invoking.
		if s.maxIterations > 0 && s.iteration > s.maxIterations {
			s.logger.Info("max_iterations_reached", "max", s.maxIterations)
			return s.tracker.Summary()
		}

		if s.callbacks.OnTick != nil {
			s.callbacks.OnTick(s.iteration)
		}

		outcome := s.action.Invoke(invokeCtx, s.timeout)
		s.tracker.Record(outcome)
		s.logOutcome(s.iteration, outcome)

		if s.callbacks.OnOutcome != nil {
			s.callbacks.OnOutcome(s.iteration, outcome)
		}

		// Skip the sleep when stopping or when this was the last permitted
		// iteration; the next pass through the top of the loop ends the run.
		if ctx.Err() != nil {
			continue
		}
		if s.maxIterations > 0 && s.iteration >= s.maxIterations {
			continue
		}

		s.setState(StateSleeping)
		select {
		case <-ctx.Done():
			// Observed at the top of the next tick.
		case <-time.After(s.interval):
		}
		s.setState(StateRunning)
	}
}

// logStart logs the startup preamble before the first tick.
func (s *Supervisor) logStart() {
	s.logger.Info("loop_starting",
		"action", s.action.Name(),
		"command", s.action.CommandString(),
		"interval", s.interval.String(),
	)

	if s.maxIterations > 0 {
		s.logger.Info("iteration_bound", "max_iterations", s.maxIterations)
	} else {
		s.logger.Info("running_indefinitely", "hint", "press Ctrl+C to stop")
	}
	if s.timeout > 0 {
		s.logger.Info("invocation_timeout", "timeout", s.timeout.String())
	}
}

// logOutcome emits the per-tick progress line. Failures always log with the
// captured error text; successes honor the success-only/verbose flags;
// timeouts get a distinct message.
func (s *Supervisor) logOutcome(iteration int64, o action.Outcome) {
	switch o.Status {
	case action.StatusSuccess:
		if !s.successOnly || s.verbose {
			s.logger.Info("iteration_succeeded", "iteration", iteration)
		}

	case action.StatusTimeout:
		s.logger.Error("iteration_timed_out",
			"iteration", iteration,
			"timeout", s.timeout.String(),
		)

	case action.StatusError:
		s.logger.Error("invocation_error",
			"iteration", iteration,
			"error", strings.TrimSpace(o.Stderr),
		)

	default:
		s.logger.Error("iteration_failed",
			"iteration", iteration,
			"exit_code", o.ExitCode,
			"error", strings.TrimSpace(o.Stderr),
		)
	}

	if s.verbose && o.Stdout != "" {
		s.logger.Info("response",
			"iteration", iteration,
			"stdout", strings.TrimSpace(o.Stdout),
		)
	}
}

// State returns the current state of the supervisor.
func (s *Supervisor) State() State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// setState updates the state.
func (s *Supervisor) setState(newState State) {
	s.stateMu.Lock()
	s.state = newState
	s.stateMu.Unlock()
}

// Tracker returns the outcome tracker, for display collaborators.
func (s *Supervisor) Tracker() *stats.Tracker {
	return s.tracker
}
