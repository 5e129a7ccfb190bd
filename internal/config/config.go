// Package config provides configuration management for curloop.
package config

import "time"

// Mode selects which action the loop drives.
const (
	// ModeCurl runs a generic curl command each tick.
	ModeCurl = "curl"

	// ModeNtfy posts a notification to an ntfy topic each tick.
	ModeNtfy = "ntfy"
)

// Config holds all configuration options for one loop run.
// It is immutable once the supervisor is constructed.
type Config struct {
	// Cadence
	Interval      time.Duration `json:"interval"`
	MaxIterations int64         `json:"max_iterations"` // 0 = unbounded
	Timeout       time.Duration `json:"timeout"`        // 0 = no per-invocation timeout

	// Action
	Mode     string   `json:"mode"` // curl, ntfy
	CurlPath string   `json:"curl_path"`
	CurlArgs []string `json:"curl_args"`

	// Notification (ModeNtfy)
	Server   string `json:"server"`
	Topic    string `json:"topic"`
	Message  string `json:"message"`
	Title    string `json:"title"`
	Tags     string `json:"tags"`
	Priority int    `json:"priority"` // 0 = unset, otherwise 1-5
	Delay    string `json:"delay"`

	// Output
	SuccessOnly bool   `json:"success_only"`
	Verbose     bool   `json:"verbose"`
	LogLevel    string `json:"log_level"`
	LogFormat   string `json:"log_format"` // json, text

	// Observability
	MetricsAddr string `json:"metrics_addr"` // empty = disabled
	TUIEnabled  bool   `json:"tui"`

	// Diagnostic modes
	PrintCmd bool `json:"print_cmd"`
}

// DefaultConfig returns a Config with the generic curl-loop defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval:  1 * time.Second,
		Mode:      ModeCurl,
		CurlPath:  "curl",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// DefaultNotifyConfig returns a Config with the notification-loop defaults.
// Notifications default to a much slower cadence than the curl loop.
func DefaultNotifyConfig() *Config {
	cfg := DefaultConfig()
	cfg.Mode = ModeNtfy
	cfg.Interval = 5 * time.Minute
	cfg.Server = "https://ntfy.sh"
	cfg.Topic = "efenow_alerts"
	return cfg
}
