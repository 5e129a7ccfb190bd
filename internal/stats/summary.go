package stats

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the read-only report computed once at loop exit.
type Summary struct {
	// Iterations is the number of invocations performed.
	Iterations int64

	// Successes and Failures partition Iterations. Timeouts and
	// InvocationErrors are subsets of Failures.
	Successes        int64
	Failures         int64
	Timeouts         int64
	InvocationErrors int64

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// AvgPerIteration is Elapsed / Iterations.
	AvgPerIteration time.Duration

	// SuccessRate is Successes / Iterations * 100. Only valid when HasRate
	// is true; no division is attempted for a zero-iteration run.
	SuccessRate float64
	HasRate     bool

	// Invocation latency percentiles (zero when Iterations == 0).
	LatencyP50 time.Duration
	LatencyP95 time.Duration
	LatencyP99 time.Duration
	LatencyMax time.Duration
}

// SummaryConfig holds configuration for summary formatting.
type SummaryConfig struct {
	// ActionName is the name of the action that was looped.
	ActionName string

	// Command is the command line that was executed each tick.
	Command string

	// MetricsAddr is the Prometheus endpoint address, if one was enabled.
	MetricsAddr string
}

// FormatExitSummary formats the summary for display at program exit.
func FormatExitSummary(s *Summary, cfg SummaryConfig) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("═══════════════════════════════════════════════════════════════════\n")
	b.WriteString("                        curloop Execution Summary\n")
	b.WriteString("═══════════════════════════════════════════════════════════════════\n\n")

	if cfg.ActionName != "" {
		fmt.Fprintf(&b, "Action:                 %s\n", cfg.ActionName)
	}
	if cfg.Command != "" {
		fmt.Fprintf(&b, "Command:                %s\n", cfg.Command)
	}
	fmt.Fprintf(&b, "Run Duration:           %s\n\n", FormatDuration(s.Elapsed))

	fmt.Fprintf(&b, "Total Iterations:       %d\n", s.Iterations)
	fmt.Fprintf(&b, "Successful:             %d\n", s.Successes)
	fmt.Fprintf(&b, "Failed:                 %d\n", s.Failures)
	if s.Timeouts > 0 {
		fmt.Fprintf(&b, "  Timeouts:             %d\n", s.Timeouts)
	}
	if s.InvocationErrors > 0 {
		fmt.Fprintf(&b, "  Invocation Errors:    %d\n", s.InvocationErrors)
	}

	if s.HasRate {
		fmt.Fprintf(&b, "\nAverage Per Iteration:  %s\n", FormatSeconds(s.AvgPerIteration))
		fmt.Fprintf(&b, "Success Rate:           %.2f%%\n", s.SuccessRate)

		b.WriteString("\n───────────────────────────────────────────────────────────────────\n")
		b.WriteString("                        Invocation Latency\n")
		b.WriteString("───────────────────────────────────────────────────────────────────\n\n")
		fmt.Fprintf(&b, "  P50 (median):         %s\n", FormatMs(s.LatencyP50))
		fmt.Fprintf(&b, "  P95:                  %s\n", FormatMs(s.LatencyP95))
		fmt.Fprintf(&b, "  P99:                  %s\n", FormatMs(s.LatencyP99))
		fmt.Fprintf(&b, "  Max:                  %s\n", FormatMs(s.LatencyMax))
	}
	b.WriteString("\n")

	if cfg.MetricsAddr != "" {
		fmt.Fprintf(&b, "Metrics endpoint was: http://%s/metrics\n", cfg.MetricsAddr)
	}

	b.WriteString("═══════════════════════════════════════════════════════════════════\n")

	return b.String()
}

// =============================================================================
// Formatting Helper Functions (exported for reuse)
// =============================================================================

// FormatDuration formats a duration as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatSeconds formats a duration as fractional seconds.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// FormatMs formats a duration as milliseconds.
func FormatMs(d time.Duration) string {
	ms := d.Milliseconds()
	if ms == 0 && d > 0 {
		// Sub-millisecond, show microseconds
		return fmt.Sprintf("%d µs", d.Microseconds())
	}
	return fmt.Sprintf("%d ms", ms)
}

// FormatRate formats a per-second rate with appropriate precision.
func FormatRate(rate float64) string {
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	if rate >= 1 {
		return fmt.Sprintf("%.1f/s", rate)
	}
	return fmt.Sprintf("%.2f/s", rate)
}
