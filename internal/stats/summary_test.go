package stats

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExitSummary(t *testing.T) {
	s := &Summary{
		Iterations:      10,
		Successes:       9,
		Failures:        1,
		Elapsed:         65 * time.Second,
		AvgPerIteration: 6500 * time.Millisecond,
		SuccessRate:     90.0,
		HasRate:         true,
		LatencyP50:      120 * time.Millisecond,
		LatencyP95:      250 * time.Millisecond,
		LatencyP99:      400 * time.Millisecond,
		LatencyMax:      450 * time.Millisecond,
	}

	out := FormatExitSummary(s, SummaryConfig{
		ActionName: "curl",
		Command:    "curl -fsS https://example.com",
	})

	wantLines := []string{
		"curloop Execution Summary",
		"Action:                 curl",
		"Command:                curl -fsS https://example.com",
		"Run Duration:           00:01:05",
		"Total Iterations:       10",
		"Successful:             9",
		"Failed:                 1",
		"Success Rate:           90.00%",
		"P50 (median):         120 ms",
		"Max:                  450 ms",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}

	// No timeouts or invocation errors occurred, so their lines are omitted.
	if strings.Contains(out, "Timeouts") {
		t.Error("summary contains Timeouts line for a run with none")
	}
	if strings.Contains(out, "Invocation Errors") {
		t.Error("summary contains Invocation Errors line for a run with none")
	}
}

func TestFormatExitSummaryZeroIterations(t *testing.T) {
	s := &Summary{Elapsed: 2 * time.Second}

	out := FormatExitSummary(s, SummaryConfig{ActionName: "curl"})

	if !strings.Contains(out, "Total Iterations:       0") {
		t.Errorf("summary missing zero iteration count\n%s", out)
	}
	// No rate line for a run that never invoked anything.
	if strings.Contains(out, "Success Rate") {
		t.Error("summary contains a success rate for a zero-iteration run")
	}
	if strings.Contains(out, "Invocation Latency") {
		t.Error("summary contains a latency section for a zero-iteration run")
	}
}

func TestFormatExitSummaryTimeoutBreakdown(t *testing.T) {
	s := &Summary{
		Iterations:       4,
		Successes:        1,
		Failures:         3,
		Timeouts:         2,
		InvocationErrors: 1,
		Elapsed:          time.Second,
		HasRate:          true,
		SuccessRate:      25.0,
	}

	out := FormatExitSummary(s, SummaryConfig{})

	if !strings.Contains(out, "Timeouts:             2") {
		t.Errorf("summary missing timeout breakdown\n%s", out)
	}
	if !strings.Contains(out, "Invocation Errors:    1") {
		t.Errorf("summary missing invocation error breakdown\n%s", out)
	}
}

func TestFormatExitSummaryMetricsAddr(t *testing.T) {
	s := &Summary{Iterations: 1, Successes: 1, HasRate: true, SuccessRate: 100}

	out := FormatExitSummary(s, SummaryConfig{MetricsAddr: "localhost:9090"})
	if !strings.Contains(out, "http://localhost:9090/metrics") {
		t.Errorf("summary missing metrics endpoint\n%s", out)
	}

	out = FormatExitSummary(s, SummaryConfig{})
	if strings.Contains(out, "/metrics") {
		t.Error("summary mentions metrics endpoint when none was configured")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{61 * time.Second, "00:01:01"},
		{3661 * time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatMs(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 ms"},
		{500 * time.Microsecond, "500 µs"},
		{15 * time.Millisecond, "15 ms"},
		{2 * time.Second, "2000 ms"},
	}

	for _, tt := range tests {
		if got := FormatMs(tt.d); got != tt.want {
			t.Errorf("FormatMs(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{0.5, "0.50/s"},
		{2.0, "2.0/s"},
		{1500, "1.5K/s"},
	}

	for _, tt := range tests {
		if got := FormatRate(tt.rate); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}
