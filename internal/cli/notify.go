package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/efenow/curloop/internal/config"
)

var (
	notifyInterval    time.Duration
	notifyIterations  int64
	notifyTimeout     time.Duration
	notifyPlaybook    string
	notifyCurlPath    string
	notifyServer      string
	notifyTopic       string
	notifyMessage     string
	notifyTitle       string
	notifyTags        string
	notifyPriority    int
	notifyDelay       string
	notifySuccessOnly bool
	notifyVerbose     bool
	notifyLogLevel    string
	notifyLogFormat   string
	notifyMetricsAddr string
	notifyTUI         bool
	notifyPrintCmd    bool
)

var notifyCmd = &cobra.Command{
	Use:   "notify [flags]",
	Short: "Loop an ntfy notification",
	Long: `Posts a message to an ntfy topic once per interval, via curl. The
default cadence is much slower than the curl loop since notifications are
usually reminders rather than probes.

Example:
  curloop notify -m "check the oven"
  curloop notify --topic kitchen -m "check the oven" --interval 10m -n 6
  curloop notify -m "deploy finished" --title Deploy --tags tada --priority 4`,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().DurationVarP(&notifyInterval, "interval", "i", 5*time.Minute, "pause between notifications")
	notifyCmd.Flags().Int64VarP(&notifyIterations, "iterations", "n", 0, "stop after this many notifications (0 = run forever)")
	notifyCmd.Flags().DurationVarP(&notifyTimeout, "timeout", "t", 0, "per-invocation timeout (0 = none)")
	notifyCmd.Flags().StringVar(&notifyPlaybook, "config", "", "path to an HCL playbook file")
	notifyCmd.Flags().StringVar(&notifyCurlPath, "curl-path", "curl", "path to the curl binary")
	notifyCmd.Flags().StringVar(&notifyServer, "server", config.DefaultNotifyConfig().Server, "ntfy server URL")
	notifyCmd.Flags().StringVar(&notifyTopic, "topic", config.DefaultNotifyConfig().Topic, "ntfy topic to post to")
	notifyCmd.Flags().StringVarP(&notifyMessage, "message", "m", "", "message body (required)")
	notifyCmd.Flags().StringVar(&notifyTitle, "title", "", "notification title")
	notifyCmd.Flags().StringVar(&notifyTags, "tags", "", "comma-separated emoji tags")
	notifyCmd.Flags().IntVarP(&notifyPriority, "priority", "p", 0, "priority 1 (min) to 5 (urgent)")
	notifyCmd.Flags().StringVar(&notifyDelay, "delay", "", "schedule delivery (e.g. 30min, 9am)")
	notifyCmd.Flags().BoolVar(&notifySuccessOnly, "success-only", false, "suppress per-iteration success lines")
	notifyCmd.Flags().BoolVarP(&notifyVerbose, "verbose", "v", false, "echo response bodies and debug logs")
	notifyCmd.Flags().StringVar(&notifyLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	notifyCmd.Flags().StringVar(&notifyLogFormat, "log-format", "text", "log format (text, json)")
	notifyCmd.Flags().StringVar(&notifyMetricsAddr, "metrics-addr", "", "expose Prometheus metrics on this address (e.g. :9090)")
	notifyCmd.Flags().BoolVar(&notifyTUI, "tui", false, "show a live dashboard instead of log lines")
	notifyCmd.Flags().BoolVar(&notifyPrintCmd, "print-cmd", false, "print the command that would run, then exit")

	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultNotifyConfig()

	if notifyPlaybook != "" {
		if err := config.LoadPlaybook(notifyPlaybook, cfg); err != nil {
			return err
		}
	}

	// Command-line values win over playbook values.
	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.Interval = notifyInterval
	}
	if flags.Changed("iterations") {
		cfg.MaxIterations = notifyIterations
	}
	if flags.Changed("timeout") {
		cfg.Timeout = notifyTimeout
	}
	if flags.Changed("curl-path") {
		cfg.CurlPath = notifyCurlPath
	}
	if flags.Changed("server") {
		cfg.Server = notifyServer
	}
	if flags.Changed("topic") {
		cfg.Topic = notifyTopic
	}
	if flags.Changed("message") {
		cfg.Message = notifyMessage
	}
	if flags.Changed("title") {
		cfg.Title = notifyTitle
	}
	if flags.Changed("tags") {
		cfg.Tags = notifyTags
	}
	if flags.Changed("priority") {
		cfg.Priority = notifyPriority
	}
	if flags.Changed("delay") {
		cfg.Delay = notifyDelay
	}
	if flags.Changed("success-only") {
		cfg.SuccessOnly = notifySuccessOnly
	}
	if flags.Changed("verbose") {
		cfg.Verbose = notifyVerbose
	}

	cfg.LogLevel = notifyLogLevel
	cfg.LogFormat = notifyLogFormat
	cfg.MetricsAddr = notifyMetricsAddr
	cfg.TUIEnabled = notifyTUI
	cfg.PrintCmd = notifyPrintCmd

	return executeLoop(cmd.Context(), cfg)
}
