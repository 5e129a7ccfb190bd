// Package loop implements the repeated-execution supervisor: it drives an
// external action on a fixed cadence, bounded by an optional iteration
// count, and reports aggregate outcome statistics on exit.
package loop

// State represents the current state of the supervisor.
type State int

const (
	// StateCreated is the initial state before Run has been called.
	StateCreated State = iota

	// StateRunning indicates a tick is in progress (invoking, classifying,
	// accounting).
	StateRunning

	// StateSleeping indicates the supervisor is waiting out the inter-tick
	// interval.
	StateSleeping

	// StateStopped indicates the loop has exited and the summary has been
	// produced.
	StateStopped
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// IsActive returns true while the loop is running or sleeping between ticks.
func (s State) IsActive() bool {
	return s == StateRunning || s == StateSleeping
}

// IsTerminal returns true once the loop has exited.
func (s State) IsTerminal() bool {
	return s == StateStopped
}
