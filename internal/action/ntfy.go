package action

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultNtfyServer is the public ntfy.sh endpoint.
	DefaultNtfyServer = "https://ntfy.sh"

	// DefaultNtfyTopic is the topic used when none is configured.
	DefaultNtfyTopic = "efenow_alerts"
)

// NtfyConfig holds configuration for the fixed-endpoint notification action.
type NtfyConfig struct {
	// BinaryPath is the path to the curl binary.
	BinaryPath string

	// Server is the ntfy server base URL.
	Server string

	// Topic is the ntfy topic to publish to.
	Topic string

	// Message is the notification body.
	Message string

	// Title is the optional notification title.
	Title string

	// Tags is an optional comma-separated tag list (e.g. "warning,skull").
	Tags string

	// Priority is the optional priority level, 1-5. 0 means unset.
	Priority int

	// Delay is an optional delivery delay (e.g. "10m", "1h").
	Delay string
}

// DefaultNtfyConfig returns an NtfyConfig with sensible defaults.
func DefaultNtfyConfig(message string) *NtfyConfig {
	return &NtfyConfig{
		BinaryPath: "curl",
		Server:     DefaultNtfyServer,
		Topic:      DefaultNtfyTopic,
		Message:    message,
	}
}

// NtfyAction implements Action as a notification post to an ntfy topic.
// The delivery itself is a curl invocation, so the outcome classification
// is identical to the generic curl action.
type NtfyAction struct {
	config *NtfyConfig
}

// NewNtfyAction creates a new ntfy action with the given configuration.
func NewNtfyAction(cfg *NtfyConfig) *NtfyAction {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "curl"
	}
	if cfg.Server == "" {
		cfg.Server = DefaultNtfyServer
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultNtfyTopic
	}
	return &NtfyAction{
		config: cfg,
	}
}

// Name returns "ntfy".
func (a *NtfyAction) Name() string {
	return "ntfy"
}

// Topic returns the configured topic.
func (a *NtfyAction) Topic() string {
	return a.config.Topic
}

// Config returns the ntfy configuration.
func (a *NtfyAction) Config() *NtfyConfig {
	return a.config
}

// Invoke posts the notification once and classifies the result.
func (a *NtfyAction) Invoke(ctx context.Context, timeout time.Duration) Outcome {
	return invoke(ctx, timeout, a.config.BinaryPath, a.buildArgs())
}

// buildArgs constructs the curl command-line arguments for the post.
func (a *NtfyAction) buildArgs() []string {
	args := []string{"-s", a.topicURL()}

	if a.config.Title != "" {
		args = append(args, "-H", "Title: "+a.config.Title)
	}
	if a.config.Tags != "" {
		args = append(args, "-H", "Tags: "+a.config.Tags)
	}
	if a.config.Priority != 0 {
		args = append(args, "-H", "Priority: "+strconv.Itoa(a.config.Priority))
	}
	if a.config.Delay != "" {
		args = append(args, "-H", "Delay: "+a.config.Delay)
	}

	// Message body last
	args = append(args, "-d", a.config.Message)

	return args
}

// topicURL joins the server base URL and the topic.
func (a *NtfyAction) topicURL() string {
	return strings.TrimSuffix(a.config.Server, "/") + "/" + a.config.Topic
}

// CommandString returns the command that would be executed (for debugging).
func (a *NtfyAction) CommandString() string {
	return a.config.BinaryPath + " " + strings.Join(a.buildArgs(), " ")
}
