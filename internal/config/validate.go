package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing the problem.
// Validation failures are fatal before any tick runs.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Interval < 0 {
		errs = append(errs, ValidationError{
			Field:   "interval",
			Message: "must be >= 0",
		})
	}

	if cfg.MaxIterations < 0 {
		errs = append(errs, ValidationError{
			Field:   "iterations",
			Message: "must be at least 1 when set",
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "timeout",
			Message: "must be >= 0",
		})
	}

	switch cfg.Mode {
	case ModeCurl:
		// The curl arguments themselves are pass-through and not validated,
		// but there must be some.
		if len(cfg.CurlArgs) == 0 && !cfg.PrintCmd {
			errs = append(errs, ValidationError{
				Field:   "curl_args",
				Message: "curl arguments are required",
			})
		}

	case ModeNtfy:
		if cfg.Topic == "" {
			errs = append(errs, ValidationError{
				Field:   "topic",
				Message: "must not be empty",
			})
		}
		if cfg.Message == "" {
			errs = append(errs, ValidationError{
				Field:   "message",
				Message: "is required",
			})
		}
		if cfg.Priority != 0 && (cfg.Priority < 1 || cfg.Priority > 5) {
			errs = append(errs, ValidationError{
				Field:   "priority",
				Message: fmt.Sprintf("must be between 1 and 5 (got %d)", cfg.Priority),
			})
		}
		if cfg.Server != "" {
			if err := validateURL(cfg.Server); err != nil {
				errs = append(errs, ValidationError{
					Field:   "server",
					Message: err.Error(),
				})
			}
		}

	default:
		errs = append(errs, ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("must be %q or %q (got %q)", ModeCurl, ModeNtfy, cfg.Mode),
		})
	}

	// Log format must be valid
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	// Return combined errors
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// validateURL checks if the URL is valid and uses http or https.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https (got %q)", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("URL must have a host")
	}

	return nil
}
