package tui

import (
	"fmt"
	"strings"

	"github.com/efenow/curloop/internal/action"
	"github.com/efenow/curloop/internal/stats"
)

// renderDashboard renders the live loop dashboard.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("curloop"))
	b.WriteString("\n")

	b.WriteString(m.renderOverview())
	b.WriteString("\n")
	b.WriteString(m.renderOutcomes())
	b.WriteString("\n")
	b.WriteString(m.renderLastOutcome())

	if m.metricsAddr != "" {
		b.WriteString("\n")
		b.WriteString(unitStyle.Render(fmt.Sprintf("metrics: http://%s/metrics", m.metricsAddr)))
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("[q] quit  [r] refresh"))
	b.WriteString("\n")

	return b.String()
}

// renderOverview renders the action identity and cadence section.
func (m Model) renderOverview() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Loop"))
	b.WriteString("\n")
	b.WriteString(RenderKeyValue("Action", m.actionName))
	b.WriteString("\n")
	if m.command != "" {
		b.WriteString(RenderKeyValue("Command", truncate(m.command, m.width-22)))
		b.WriteString("\n")
	}
	b.WriteString(RenderKeyValue("Interval", m.interval.String()))
	b.WriteString("\n")
	b.WriteString(RenderKeyValue("Elapsed", formatDuration(m.Elapsed())))
	b.WriteString("\n")

	if m.maxIterations > 0 {
		label := fmt.Sprintf("%d / %d", m.snapshot.Invocations, m.maxIterations)
		b.WriteString(RenderKeyValue("Iterations", label))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Progress:"))
		b.WriteString(RenderProgressBar(m.BoundProgress(), 30))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderKeyValue("Iterations", fmt.Sprintf("%d (unbounded)", m.snapshot.Invocations)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderOutcomes renders the success/failure accounting section.
func (m Model) renderOutcomes() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Outcomes"))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Successes:"))
	b.WriteString(valueGoodStyle.Render(fmt.Sprintf("%d", m.snapshot.Successes)))
	b.WriteString("\n")

	failStyle := valueStyle
	if m.snapshot.Failures > 0 {
		failStyle = valueBadStyle
	}
	b.WriteString(labelStyle.Render("Failures:"))
	b.WriteString(failStyle.Render(fmt.Sprintf("%d", m.snapshot.Failures)))
	b.WriteString("\n")

	if m.snapshot.Timeouts > 0 {
		b.WriteString(labelStyle.Render("  Timeouts:"))
		b.WriteString(valueWarnStyle.Render(fmt.Sprintf("%d", m.snapshot.Timeouts)))
		b.WriteString("\n")
	}
	if m.snapshot.InvocationErrors > 0 {
		b.WriteString(labelStyle.Render("  Invocation errors:"))
		b.WriteString(valueBadStyle.Render(fmt.Sprintf("%d", m.snapshot.InvocationErrors)))
		b.WriteString("\n")
	}

	if rate, ok := m.SuccessRate(); ok {
		b.WriteString(labelStyle.Render("Success rate:"))
		b.WriteString(GetRateStyle(rate).Render(fmt.Sprintf("%.2f%%", rate)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLastOutcome renders the most recent invocation result.
func (m Model) renderLastOutcome() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Last Outcome"))
	b.WriteString("\n")

	if !m.snapshot.HasOutcome {
		b.WriteString(unitStyle.Render("waiting for first invocation"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render("Status:"))
	b.WriteString(statusStyle(m.snapshot)(m.snapshot.LastStatus.String()))
	b.WriteString("\n")
	b.WriteString(RenderKeyValue("Exit code", fmt.Sprintf("%d", m.snapshot.LastExitCode)))
	b.WriteString("\n")

	return b.String()
}

// statusStyle picks the style for the last outcome status line.
func statusStyle(s stats.Snapshot) func(...string) string {
	switch s.LastStatus {
	case action.StatusSuccess:
		return valueGoodStyle.Render
	case action.StatusTimeout:
		return valueWarnStyle.Render
	default:
		return valueBadStyle.Render
	}
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
