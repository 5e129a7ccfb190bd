package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// A playbook is an HCL file declaring the same options as the command-line
// flags, so a recurring invocation can be kept in version control:
//
//	interval       = "30s"
//	max_iterations = 10
//	timeout        = "5s"
//
//	ntfy {
//	  topic    = "alerts"
//	  message  = "backup finished on ${env.HOSTNAME}"
//	  priority = 4
//	}
//
// Environment variables are exposed as the `env` object. Values set on the
// command line take precedence over playbook values.

// playbookRoot mirrors the top-level playbook attributes. Optional fields
// are pointers so "absent" is distinguishable from the zero value.
type playbookRoot struct {
	Interval      *string `hcl:"interval,optional"`
	MaxIterations *int64  `hcl:"max_iterations,optional"`
	Timeout       *string `hcl:"timeout,optional"`
	SuccessOnly   *bool   `hcl:"success_only,optional"`
	Verbose       *bool   `hcl:"verbose,optional"`

	Curl *curlBlock `hcl:"curl,block"`
	Ntfy *ntfyBlock `hcl:"ntfy,block"`
}

type curlBlock struct {
	Binary *string  `hcl:"binary,optional"`
	Args   []string `hcl:"args"`
}

type ntfyBlock struct {
	Server   *string `hcl:"server,optional"`
	Topic    *string `hcl:"topic,optional"`
	Message  string  `hcl:"message"`
	Title    *string `hcl:"title,optional"`
	Tags     *string `hcl:"tags,optional"`
	Priority *int    `hcl:"priority,optional"`
	Delay    *string `hcl:"delay,optional"`
}

// LoadPlaybook parses the HCL playbook at path and merges its values into
// cfg. Only values present in the file are applied.
func LoadPlaybook(path string, cfg *Config) error {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse playbook %s: %w", path, diags)
	}

	var root playbookRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(), &root)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode playbook %s: %w", path, diags)
	}

	return applyPlaybook(&root, cfg)
}

// applyPlaybook merges decoded playbook values into cfg.
func applyPlaybook(root *playbookRoot, cfg *Config) error {
	if root.Interval != nil {
		d, err := time.ParseDuration(*root.Interval)
		if err != nil {
			return ValidationError{Field: "interval", Message: err.Error()}
		}
		cfg.Interval = d
	}
	if root.MaxIterations != nil {
		cfg.MaxIterations = *root.MaxIterations
	}
	if root.Timeout != nil {
		d, err := time.ParseDuration(*root.Timeout)
		if err != nil {
			return ValidationError{Field: "timeout", Message: err.Error()}
		}
		cfg.Timeout = d
	}
	if root.SuccessOnly != nil {
		cfg.SuccessOnly = *root.SuccessOnly
	}
	if root.Verbose != nil {
		cfg.Verbose = *root.Verbose
	}

	if root.Curl != nil && root.Ntfy != nil {
		return ValidationError{Field: "playbook", Message: "declare either a curl block or a ntfy block, not both"}
	}

	if root.Curl != nil {
		cfg.Mode = ModeCurl
		cfg.CurlArgs = root.Curl.Args
		if root.Curl.Binary != nil {
			cfg.CurlPath = *root.Curl.Binary
		}
	}

	if root.Ntfy != nil {
		cfg.Mode = ModeNtfy
		cfg.Message = root.Ntfy.Message
		if root.Ntfy.Server != nil {
			cfg.Server = *root.Ntfy.Server
		}
		if root.Ntfy.Topic != nil {
			cfg.Topic = *root.Ntfy.Topic
		}
		if root.Ntfy.Title != nil {
			cfg.Title = *root.Ntfy.Title
		}
		if root.Ntfy.Tags != nil {
			cfg.Tags = *root.Ntfy.Tags
		}
		if root.Ntfy.Priority != nil {
			cfg.Priority = *root.Ntfy.Priority
		}
		if root.Ntfy.Delay != nil {
			cfg.Delay = *root.Ntfy.Delay
		}
	}

	return nil
}

// evalContext builds the evaluation context for playbook expressions,
// exposing the process environment as the `env` object.
func evalContext() *hcl.EvalContext {
	envVars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		envVars[key] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(envVars),
		},
	}
}
