package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/efenow/curloop/internal/action"
)

func gatherFamilies(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}
	return byName
}

func counterValue(f *dto.MetricFamily) float64 {
	var total float64
	for _, m := range f.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func TestCollectorRecordOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectorWithRegistry(CollectorConfig{
		Version: "test",
		Action:  "curl",
		Command: "curl -fsS https://example.com",
	}, reg)

	c.RecordOutcome(action.Outcome{Status: action.StatusSuccess, Duration: 10 * time.Millisecond})
	c.RecordOutcome(action.Outcome{Status: action.StatusSuccess, Duration: 20 * time.Millisecond})
	c.RecordOutcome(action.Outcome{Status: action.StatusFailure, ExitCode: 22, Duration: 5 * time.Millisecond})
	c.RecordOutcome(action.Outcome{Status: action.StatusTimeout, ExitCode: -1, Duration: time.Second})
	c.RecordOutcome(action.Outcome{Status: action.StatusError, ExitCode: -1})

	families := gatherFamilies(t, reg)

	if got := counterValue(families["curloop_iterations_total"]); got != 5 {
		t.Errorf("curloop_iterations_total = %v, want 5", got)
	}
	if got := counterValue(families["curloop_successes_total"]); got != 2 {
		t.Errorf("curloop_successes_total = %v, want 2", got)
	}
	if got := counterValue(families["curloop_failures_total"]); got != 3 {
		t.Errorf("curloop_failures_total = %v, want 3 across all reasons", got)
	}

	// Failures are labelled by reason.
	reasons := make(map[string]float64)
	for _, m := range families["curloop_failures_total"].GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "reason" {
				reasons[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	for reason, want := range map[string]float64{
		"failure":          1,
		"timeout":          1,
		"invocation_error": 1,
	} {
		if reasons[reason] != want {
			t.Errorf("failures{reason=%q} = %v, want %v", reason, reasons[reason], want)
		}
	}
}

func TestCollectorHistogramAndGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollectorWithRegistry(CollectorConfig{Version: "test"}, reg)

	c.RecordOutcome(action.Outcome{Status: action.StatusFailure, ExitCode: 7, Duration: 50 * time.Millisecond})

	families := gatherFamilies(t, reg)

	hist := families["curloop_invocation_duration_seconds"]
	if hist == nil {
		t.Fatal("missing curloop_invocation_duration_seconds")
	}
	if got := hist.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
		t.Errorf("histogram sample count = %d, want 1", got)
	}

	last := families["curloop_last_exit_code"]
	if got := last.GetMetric()[0].GetGauge().GetValue(); got != 7 {
		t.Errorf("curloop_last_exit_code = %v, want 7", got)
	}
}

func TestCollectorInfoLabels(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollectorWithRegistry(CollectorConfig{
		Version: "1.2.3",
		Action:  "ntfy",
		Command: "curl -s https://ntfy.sh/alerts -d hi",
	}, reg)

	families := gatherFamilies(t, reg)
	info := families["curloop_info"]
	if info == nil {
		t.Fatal("missing curloop_info")
	}

	labels := make(map[string]string)
	for _, l := range info.GetMetric()[0].GetLabel() {
		labels[l.GetName()] = l.GetValue()
	}
	if labels["version"] != "1.2.3" {
		t.Errorf("version label = %q, want 1.2.3", labels["version"])
	}
	if labels["action"] != "ntfy" {
		t.Errorf("action label = %q, want ntfy", labels["action"])
	}
	if got := info.GetMetric()[0].GetGauge().GetValue(); got != 1 {
		t.Errorf("curloop_info value = %v, want 1", got)
	}
}
