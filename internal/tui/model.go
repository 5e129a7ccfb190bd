package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/efenow/curloop/internal/stats"
)

// TickMsg is sent periodically to refresh the display.
type TickMsg time.Time

// QuitMsg signals the TUI should exit.
type QuitMsg struct{}

// StatsSource provides outcome snapshots for display.
type StatsSource interface {
	Snapshot() stats.Snapshot
}

// Config holds TUI configuration.
type Config struct {
	ActionName    string
	Command       string
	Interval      time.Duration
	MaxIterations int64 // 0 = unbounded
	MetricsAddr   string
	StatsSource   StatsSource
}

// Model represents the TUI state.
type Model struct {
	actionName    string
	command       string
	interval      time.Duration
	maxIterations int64
	metricsAddr   string

	statsSource StatsSource
	snapshot    stats.Snapshot
	startTime   time.Time
	lastUpdate  time.Time

	width  int
	height int

	quitting bool
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		actionName:    cfg.ActionName,
		command:       cfg.Command,
		interval:      cfg.Interval,
		maxIterations: cfg.MaxIterations,
		metricsAddr:   cfg.MetricsAddr,
		statsSource:   cfg.StatsSource,
		startTime:     time.Now(),
		lastUpdate:    time.Now(),
		width:         80,
		height:        24,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, tickCmd()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		if m.statsSource != nil {
			m.snapshot = m.statsSource.Snapshot()
		}
		m.lastUpdate = time.Now()
		return m, tickCmd()

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Elapsed returns the time since the loop started.
func (m Model) Elapsed() time.Duration {
	return time.Since(m.startTime)
}

// BoundProgress returns iteration progress against the bound (0.0 to 1.0),
// or -1 for an unbounded loop.
func (m Model) BoundProgress() float64 {
	if m.maxIterations <= 0 {
		return -1
	}
	p := float64(m.snapshot.Invocations) / float64(m.maxIterations)
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// SuccessRate returns the running success percentage, and whether there have
// been any invocations to compute it from.
func (m Model) SuccessRate() (float64, bool) {
	if m.snapshot.Invocations == 0 {
		return 0, false
	}
	return float64(m.snapshot.Successes) / float64(m.snapshot.Invocations) * 100, true
}

// SendQuit sends a quit message to the TUI.
func SendQuit(p *tea.Program) {
	if p != nil {
		p.Send(QuitMsg{})
	}
}

// formatDuration formats a duration as HH:MM:SS.
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
