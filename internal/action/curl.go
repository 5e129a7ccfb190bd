package action

import (
	"context"
	"strings"
	"time"
)

// CurlConfig holds configuration for the generic curl action.
type CurlConfig struct {
	// BinaryPath is the path to the curl binary.
	BinaryPath string

	// Args are the arguments passed to curl verbatim (without the leading
	// "curl"). They are not validated beyond pass-through.
	Args []string
}

// DefaultCurlConfig returns a CurlConfig with sensible defaults.
func DefaultCurlConfig(args []string) *CurlConfig {
	return &CurlConfig{
		BinaryPath: "curl",
		Args:       args,
	}
}

// CurlAction implements Action by shelling out to curl with the configured
// arguments. One invocation corresponds to one HTTP request made by curl.
type CurlAction struct {
	config *CurlConfig
}

// NewCurlAction creates a new curl action with the given configuration.
func NewCurlAction(cfg *CurlConfig) *CurlAction {
	if cfg.BinaryPath == "" {
		cfg.BinaryPath = "curl"
	}
	return &CurlAction{
		config: cfg,
	}
}

// Name returns "curl".
func (a *CurlAction) Name() string {
	return "curl"
}

// Invoke runs curl once and classifies the result.
func (a *CurlAction) Invoke(ctx context.Context, timeout time.Duration) Outcome {
	return invoke(ctx, timeout, a.config.BinaryPath, a.config.Args)
}

// Config returns the curl configuration.
func (a *CurlAction) Config() *CurlConfig {
	return a.config
}

// CommandString returns the command that would be executed (for debugging).
func (a *CurlAction) CommandString() string {
	if len(a.config.Args) == 0 {
		return a.config.BinaryPath
	}
	return a.config.BinaryPath + " " + strings.Join(a.config.Args, " ")
}
