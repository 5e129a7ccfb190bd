package stats

import (
	"testing"
	"time"

	"github.com/efenow/curloop/internal/action"
)

func TestTrackerRecordClassification(t *testing.T) {
	tests := []struct {
		name         string
		outcomes     []action.Status
		wantSucc     int64
		wantFail     int64
		wantTimeouts int64
		wantErrors   int64
	}{
		{
			name:     "all successes",
			outcomes: []action.Status{action.StatusSuccess, action.StatusSuccess},
			wantSucc: 2,
		},
		{
			name:     "plain failures",
			outcomes: []action.Status{action.StatusFailure, action.StatusFailure, action.StatusSuccess},
			wantSucc: 1,
			wantFail: 2,
		},
		{
			name:         "timeouts count as failures",
			outcomes:     []action.Status{action.StatusTimeout},
			wantFail:     1,
			wantTimeouts: 1,
		},
		{
			name:       "invocation errors count as failures",
			outcomes:   []action.Status{action.StatusError},
			wantFail:   1,
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for _, s := range tt.outcomes {
				tr.Record(action.Outcome{Status: s, Duration: time.Millisecond})
			}

			snap := tr.Snapshot()
			if snap.Invocations != int64(len(tt.outcomes)) {
				t.Errorf("Invocations = %d, want %d", snap.Invocations, len(tt.outcomes))
			}
			if snap.Successes != tt.wantSucc {
				t.Errorf("Successes = %d, want %d", snap.Successes, tt.wantSucc)
			}
			if snap.Failures != tt.wantFail {
				t.Errorf("Failures = %d, want %d", snap.Failures, tt.wantFail)
			}
			if snap.Timeouts != tt.wantTimeouts {
				t.Errorf("Timeouts = %d, want %d", snap.Timeouts, tt.wantTimeouts)
			}
			if snap.InvocationErrors != tt.wantErrors {
				t.Errorf("InvocationErrors = %d, want %d", snap.InvocationErrors, tt.wantErrors)
			}
		})
	}
}

func TestTrackerSummaryRate(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < 3; i++ {
		tr.Record(action.Outcome{Status: action.StatusSuccess, Duration: 10 * time.Millisecond})
	}
	tr.Record(action.Outcome{Status: action.StatusFailure, ExitCode: 22, Duration: 10 * time.Millisecond})

	s := tr.Summary()

	if s.Iterations != 4 {
		t.Errorf("Iterations = %d, want 4", s.Iterations)
	}
	if !s.HasRate {
		t.Fatal("HasRate = false, want true")
	}
	if s.SuccessRate != 75.0 {
		t.Errorf("SuccessRate = %v, want 75", s.SuccessRate)
	}
	if s.AvgPerIteration <= 0 {
		t.Errorf("AvgPerIteration = %v, want > 0", s.AvgPerIteration)
	}
}

func TestTrackerSummaryZeroIterations(t *testing.T) {
	tr := NewTracker()
	s := tr.Summary()

	if s.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", s.Iterations)
	}
	if s.HasRate {
		t.Error("HasRate = true for zero iterations, want false (no division attempted)")
	}
	if s.LatencyMax != 0 {
		t.Errorf("LatencyMax = %v, want 0", s.LatencyMax)
	}
}

func TestTrackerLatencyPercentiles(t *testing.T) {
	tr := NewTracker()
	for i := 1; i <= 100; i++ {
		tr.Record(action.Outcome{
			Status:   action.StatusSuccess,
			Duration: time.Duration(i) * time.Millisecond,
		})
	}

	s := tr.Summary()

	if s.LatencyMax != 100*time.Millisecond {
		t.Errorf("LatencyMax = %v, want 100ms", s.LatencyMax)
	}
	if s.LatencyP50 <= 0 || s.LatencyP50 > s.LatencyP95 {
		t.Errorf("P50 = %v, want > 0 and <= P95 (%v)", s.LatencyP50, s.LatencyP95)
	}
	if s.LatencyP95 > s.LatencyP99 {
		t.Errorf("P95 = %v > P99 = %v", s.LatencyP95, s.LatencyP99)
	}
	if s.LatencyP99 > s.LatencyMax {
		t.Errorf("P99 = %v > Max = %v", s.LatencyP99, s.LatencyMax)
	}
}

func TestTrackerSnapshotLastOutcome(t *testing.T) {
	tr := NewTracker()

	snap := tr.Snapshot()
	if snap.HasOutcome {
		t.Error("HasOutcome = true before any Record, want false")
	}

	tr.Record(action.Outcome{Status: action.StatusFailure, ExitCode: 7})
	snap = tr.Snapshot()

	if !snap.HasOutcome {
		t.Fatal("HasOutcome = false after Record, want true")
	}
	if snap.LastStatus != action.StatusFailure {
		t.Errorf("LastStatus = %v, want failure", snap.LastStatus)
	}
	if snap.LastExitCode != 7 {
		t.Errorf("LastExitCode = %d, want 7", snap.LastExitCode)
	}
}
