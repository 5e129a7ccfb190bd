// Package stats provides outcome accounting and the exit summary for loop runs.
package stats

import (
	"sync"
	"time"

	"github.com/influxdata/tdigest"

	"github.com/efenow/curloop/internal/action"
)

// Tracker accumulates invocation outcomes over the lifetime of one loop run.
//
// The supervisor is the only writer; the TUI reads concurrent snapshots, so
// all access goes through a mutex. Latency observations feed a t-digest
// (~100 centroids) for the percentile section of the exit summary.
type Tracker struct {
	mu sync.Mutex

	invocations      int64
	successes        int64
	failures         int64
	timeouts         int64
	invocationErrors int64

	latency    *tdigest.TDigest
	maxLatency time.Duration

	startTime time.Time

	lastStatus   action.Status
	lastExitCode int
	hasOutcome   bool
}

// Snapshot is a point-in-time copy of the tracker state, safe to read after
// the tracker has moved on.
type Snapshot struct {
	Invocations      int64
	Successes        int64
	Failures         int64
	Timeouts         int64
	InvocationErrors int64
	Elapsed          time.Duration

	LastStatus   action.Status
	LastExitCode int
	HasOutcome   bool
}

// NewTracker creates a tracker with the clock started at now.
func NewTracker() *Tracker {
	return &Tracker{
		latency:   tdigest.NewWithCompression(100),
		startTime: time.Now(),
	}
}

// Record accounts one invocation outcome. Timeouts and invocation errors
// count as failures, matching the loop's accounting rules.
func (t *Tracker) Record(o action.Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.invocations++

	switch o.Status {
	case action.StatusSuccess:
		t.successes++
	case action.StatusTimeout:
		t.failures++
		t.timeouts++
	case action.StatusError:
		t.failures++
		t.invocationErrors++
	default:
		t.failures++
	}

	t.latency.Add(o.Duration.Seconds(), 1)
	if o.Duration > t.maxLatency {
		t.maxLatency = o.Duration
	}

	t.lastStatus = o.Status
	t.lastExitCode = o.ExitCode
	t.hasOutcome = true
}

// Snapshot returns a copy of the current state for display.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Invocations:      t.invocations,
		Successes:        t.successes,
		Failures:         t.failures,
		Timeouts:         t.timeouts,
		InvocationErrors: t.invocationErrors,
		Elapsed:          time.Since(t.startTime),
		LastStatus:       t.lastStatus,
		LastExitCode:     t.lastExitCode,
		HasOutcome:       t.hasOutcome,
	}
}

// Invocations returns the number of recorded invocations.
func (t *Tracker) Invocations() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.invocations
}

// Summary computes the final report. Call once at loop exit.
func (t *Tracker) Summary() *Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := &Summary{
		Iterations:       t.invocations,
		Successes:        t.successes,
		Failures:         t.failures,
		Timeouts:         t.timeouts,
		InvocationErrors: t.invocationErrors,
		Elapsed:          time.Since(t.startTime),
	}

	if t.invocations > 0 {
		s.AvgPerIteration = s.Elapsed / time.Duration(t.invocations)
		s.SuccessRate = float64(t.successes) / float64(t.invocations) * 100
		s.HasRate = true

		s.LatencyP50 = secondsToDuration(t.latency.Quantile(0.50))
		s.LatencyP95 = secondsToDuration(t.latency.Quantile(0.95))
		s.LatencyP99 = secondsToDuration(t.latency.Quantile(0.99))
		s.LatencyMax = t.maxLatency
	}

	return s
}

// secondsToDuration converts a float seconds value to a Duration.
func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
