package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/efenow/curloop/internal/config"
)

var (
	runInterval    time.Duration
	runIterations  int64
	runTimeout     time.Duration
	runPlaybook    string
	runCurlPath    string
	runSuccessOnly bool
	runVerbose     bool
	runLogLevel    string
	runLogFormat   string
	runMetricsAddr string
	runTUI         bool
	runPrintCmd    bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- [curl arguments...]",
	Short: "Loop a curl command",
	Long: `Invokes curl with the given arguments once per interval. Arguments
after -- are passed to curl untouched, so any curl invocation that works on
its own works here.

Example:
  curloop run -- -fsS https://example.com/health
  curloop run --interval 30s --iterations 10 -- -fsS https://example.com/health
  curloop run --timeout 5s --metrics-addr :9090 -- -fsS https://example.com/health
  curloop run --config loop.hcl`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVarP(&runInterval, "interval", "i", 1*time.Second, "pause between iterations")
	runCmd.Flags().Int64VarP(&runIterations, "iterations", "n", 0, "stop after this many iterations (0 = run forever)")
	runCmd.Flags().DurationVarP(&runTimeout, "timeout", "t", 0, "per-invocation timeout (0 = none)")
	runCmd.Flags().StringVar(&runPlaybook, "config", "", "path to an HCL playbook file")
	runCmd.Flags().StringVar(&runCurlPath, "curl-path", "curl", "path to the curl binary")
	runCmd.Flags().BoolVar(&runSuccessOnly, "success-only", false, "suppress per-iteration success lines")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "echo response bodies and debug logs")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runLogFormat, "log-format", "text", "log format (text, json)")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090)")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "show a live dashboard instead of log lines")
	runCmd.Flags().BoolVar(&runPrintCmd, "print-cmd", false, "print the command that would run, then exit")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if runPlaybook != "" {
		if err := config.LoadPlaybook(runPlaybook, cfg); err != nil {
			return err
		}
	}

	// Command-line values win over playbook values.
	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.Interval = runInterval
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = runIterations
	}
	if flags.Changed("timeout") {
		cfg.Timeout = runTimeout
	}
	if flags.Changed("curl-path") {
		cfg.CurlPath = runCurlPath
	}
	if flags.Changed("success-only") {
		cfg.SuccessOnly = runSuccessOnly
	}
	if flags.Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if len(args) > 0 {
		cfg.Mode = config.ModeCurl
		cfg.CurlArgs = args
	}

	cfg.LogLevel = runLogLevel
	cfg.LogFormat = runLogFormat
	cfg.MetricsAddr = runMetricsAddr
	cfg.TUIEnabled = runTUI
	cfg.PrintCmd = runPrintCmd

	return executeLoop(cmd.Context(), cfg)
}
