package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writePlaybook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loop.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing playbook: %v", err)
	}
	return path
}

func TestLoadPlaybookCurl(t *testing.T) {
	path := writePlaybook(t, `
interval       = "30s"
max_iterations = 10
timeout        = "5s"
success_only   = true

curl {
  args = ["-fsS", "https://example.com/health"]
}
`)

	cfg := DefaultConfig()
	if err := LoadPlaybook(path, cfg); err != nil {
		t.Fatalf("LoadPlaybook() error = %v", err)
	}

	if cfg.Interval != 30*time.Second {
		t.Errorf("Interval = %v, want 30s", cfg.Interval)
	}
	if cfg.MaxIterations != 10 {
		t.Errorf("MaxIterations = %d, want 10", cfg.MaxIterations)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if !cfg.SuccessOnly {
		t.Error("SuccessOnly = false, want true")
	}
	if cfg.Mode != ModeCurl {
		t.Errorf("Mode = %q, want curl", cfg.Mode)
	}
	if len(cfg.CurlArgs) != 2 || cfg.CurlArgs[1] != "https://example.com/health" {
		t.Errorf("CurlArgs = %v", cfg.CurlArgs)
	}
}

func TestLoadPlaybookNtfy(t *testing.T) {
	path := writePlaybook(t, `
interval = "10m"

ntfy {
  topic    = "kitchen"
  message  = "check the oven"
  title    = "Kitchen"
  priority = 4
}
`)

	cfg := DefaultNotifyConfig()
	if err := LoadPlaybook(path, cfg); err != nil {
		t.Fatalf("LoadPlaybook() error = %v", err)
	}

	if cfg.Mode != ModeNtfy {
		t.Errorf("Mode = %q, want ntfy", cfg.Mode)
	}
	if cfg.Topic != "kitchen" {
		t.Errorf("Topic = %q, want kitchen", cfg.Topic)
	}
	if cfg.Message != "check the oven" {
		t.Errorf("Message = %q", cfg.Message)
	}
	if cfg.Priority != 4 {
		t.Errorf("Priority = %d, want 4", cfg.Priority)
	}
	// Server was not set in the file, so the default stays.
	if cfg.Server != "https://ntfy.sh" {
		t.Errorf("Server = %q, want default", cfg.Server)
	}
}

func TestLoadPlaybookEnvInterpolation(t *testing.T) {
	t.Setenv("CURLOOP_TEST_TOPIC", "from_env")

	path := writePlaybook(t, `
ntfy {
  topic   = env.CURLOOP_TEST_TOPIC
  message = "host says hi"
}
`)

	cfg := DefaultNotifyConfig()
	if err := LoadPlaybook(path, cfg); err != nil {
		t.Fatalf("LoadPlaybook() error = %v", err)
	}

	if cfg.Topic != "from_env" {
		t.Errorf("Topic = %q, want from_env", cfg.Topic)
	}
}

func TestLoadPlaybookAbsentValuesKeepDefaults(t *testing.T) {
	path := writePlaybook(t, `
curl {
  args = ["https://example.com"]
}
`)

	cfg := DefaultConfig()
	if err := LoadPlaybook(path, cfg); err != nil {
		t.Fatalf("LoadPlaybook() error = %v", err)
	}

	if cfg.Interval != time.Second {
		t.Errorf("Interval = %v, want untouched default 1s", cfg.Interval)
	}
	if cfg.MaxIterations != 0 {
		t.Errorf("MaxIterations = %d, want untouched 0", cfg.MaxIterations)
	}
}

func TestLoadPlaybookErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "both blocks",
			content: `
curl {
  args = ["https://example.com"]
}
ntfy {
  message = "hi"
}
`,
			wantErr: "not both",
		},
		{
			name:    "bad interval",
			content: `interval = "soon"`,
			wantErr: "interval",
		},
		{
			name:    "bad syntax",
			content: `curl {`,
			wantErr: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlaybook(t, tt.content)
			cfg := DefaultConfig()

			err := LoadPlaybook(path, cfg)
			if err == nil {
				t.Fatalf("LoadPlaybook() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadPlaybookMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadPlaybook(filepath.Join(t.TempDir(), "nope.hcl"), cfg); err == nil {
		t.Error("LoadPlaybook() = nil for a missing file, want error")
	}
}
