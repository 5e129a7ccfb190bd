package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/efenow/curloop/internal/action"
	"github.com/efenow/curloop/internal/config"
	"github.com/efenow/curloop/internal/logging"
	"github.com/efenow/curloop/internal/loop"
	"github.com/efenow/curloop/internal/metrics"
	"github.com/efenow/curloop/internal/preflight"
	"github.com/efenow/curloop/internal/stats"
	"github.com/efenow/curloop/internal/tui"
)

// executeLoop builds the action and supervisor from cfg and drives the loop
// to completion. Shared by the run and notify commands.
func executeLoop(ctx context.Context, cfg *config.Config) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	act, err := buildAction(cfg)
	if err != nil {
		return err
	}

	if cfg.PrintCmd {
		fmt.Println(act.CommandString())
		return nil
	}

	if checks := preflight.RunAll(cfg.CurlPath); !checks.Passed {
		preflight.PrintResults(checks)
		return fmt.Errorf("preflight checks failed")
	}

	// The dashboard owns the terminal, so logs are dropped while it runs.
	logOut := io.Writer(os.Stderr)
	if cfg.TUIEnabled {
		logOut = io.Discard
	}
	logger := logging.NewLogger(logOut, cfg.LogFormat, cfg.LogLevel, cfg.Verbose)
	logging.SetDefault(logger)

	tracker := stats.NewTracker()

	var collector *metrics.Collector
	if cfg.MetricsAddr != "" {
		collector = metrics.NewCollector(metrics.CollectorConfig{
			Version: Version,
			Action:  act.Name(),
			Command: act.CommandString(),
		})

		server := metrics.NewServer(cfg.MetricsAddr, logger)
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics_server_shutdown_failed", "error", err)
			}
		}()
	}

	supCfg := loop.Config{
		Action:        act,
		Interval:      cfg.Interval,
		MaxIterations: cfg.MaxIterations,
		Timeout:       cfg.Timeout,
		SuccessOnly:   cfg.SuccessOnly,
		Verbose:       cfg.Verbose,
		Logger:        logger,
		Tracker:       tracker,
	}
	if collector != nil {
		supCfg.Callbacks.OnOutcome = func(_ int64, o action.Outcome) {
			collector.RecordOutcome(o)
		}
	}

	supervisor, err := loop.New(supCfg)
	if err != nil {
		return err
	}

	var summary *stats.Summary
	if cfg.TUIEnabled {
		summary, err = runWithDashboard(ctx, cfg, act, supervisor, tracker)
		if err != nil {
			return err
		}
	} else {
		summary = supervisor.Run(ctx)
	}

	fmt.Print(stats.FormatExitSummary(summary, stats.SummaryConfig{
		ActionName:  act.Name(),
		Command:     act.CommandString(),
		MetricsAddr: cfg.MetricsAddr,
	}))

	return nil
}

// runWithDashboard runs the supervisor in the background while the dashboard
// owns the terminal. Quitting the dashboard stops the loop; the loop ending
// closes the dashboard.
func runWithDashboard(ctx context.Context, cfg *config.Config, act action.Action, supervisor *loop.Supervisor, tracker *stats.Tracker) (*stats.Summary, error) {
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.New(tui.Config{
		ActionName:    act.Name(),
		Command:       act.CommandString(),
		Interval:      cfg.Interval,
		MaxIterations: cfg.MaxIterations,
		MetricsAddr:   cfg.MetricsAddr,
		StatsSource:   tracker,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	done := make(chan *stats.Summary, 1)
	go func() {
		summary := supervisor.Run(loopCtx)
		done <- summary
		tui.SendQuit(program)
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done
		return nil, fmt.Errorf("dashboard error: %w", err)
	}

	// The user quit the dashboard; stop the loop and wait for its summary.
	cancel()
	return <-done, nil
}

// buildAction constructs the configured action.
func buildAction(cfg *config.Config) (action.Action, error) {
	switch cfg.Mode {
	case config.ModeCurl:
		return action.NewCurlAction(&action.CurlConfig{
			BinaryPath: cfg.CurlPath,
			Args:       cfg.CurlArgs,
		}), nil

	case config.ModeNtfy:
		return action.NewNtfyAction(&action.NtfyConfig{
			BinaryPath: cfg.CurlPath,
			Server:     cfg.Server,
			Topic:      cfg.Topic,
			Message:    cfg.Message,
			Title:      cfg.Title,
			Tags:       cfg.Tags,
			Priority:   cfg.Priority,
			Delay:      cfg.Delay,
		}), nil

	default:
		return nil, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}
