// Package preflight provides startup validation checks.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"
)

// Check represents the result of a single preflight check.
type Check struct {
	Name    string // Name of the check
	Passed  bool   // Whether the check passed
	Warning bool   // True if it's a warning (non-fatal)
	Message string // Additional context
}

// Result holds the results of all preflight checks.
type Result struct {
	Checks []Check
	Passed bool
}

// String returns a human-readable summary of the check.
func (c Check) String() string {
	status := "✓"
	if !c.Passed {
		status = "✗"
	} else if c.Warning {
		status = "⚠"
	}
	return fmt.Sprintf("  %s %s: %s", status, c.Name, c.Message)
}

// RunAll executes all preflight checks for the configured binary.
func RunAll(binaryPath string) *Result {
	result := &Result{
		Checks: make([]Check, 0, 2),
		Passed: true,
	}

	pathCheck := checkBinaryOnPath(binaryPath)
	result.Checks = append(result.Checks, pathCheck)
	if !pathCheck.Passed {
		result.Passed = false
		// No point probing the version of a binary we cannot find.
		return result
	}

	versionCheck := checkBinaryRuns(binaryPath)
	result.Checks = append(result.Checks, versionCheck)
	if !versionCheck.Passed {
		result.Passed = false
	}

	return result
}

// checkBinaryOnPath verifies the binary resolves to an executable.
func checkBinaryOnPath(path string) Check {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return Check{
			Name:    "binary",
			Passed:  false,
			Message: fmt.Sprintf("%s not found: %v", path, err),
		}
	}

	return Check{
		Name:    "binary",
		Passed:  true,
		Message: fmt.Sprintf("found at %s", resolved),
	}
}

// checkBinaryRuns verifies the binary executes and reports its version.
func checkBinaryRuns(path string) Check {
	cmd := exec.Command(path, "--version")
	output, err := cmd.Output()

	if err != nil {
		return Check{
			Name:    "binary_version",
			Passed:  false,
			Message: fmt.Sprintf("%s --version failed: %v", path, err),
		}
	}

	// First line is "curl 8.5.0 (x86_64-pc-linux-gnu) ..."
	version := "unknown"
	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		parts := strings.Fields(lines[0])
		if len(parts) >= 2 {
			version = parts[1]
		}
	}

	return Check{
		Name:    "binary_version",
		Passed:  true,
		Message: fmt.Sprintf("version %s", version),
	}
}

// PrintResults prints the preflight check results to stdout.
func PrintResults(result *Result) {
	fmt.Println("Preflight checks:")
	for _, check := range result.Checks {
		fmt.Println(check.String())
		if !check.Passed {
			fmt.Println("    Fix: install curl or pass --curl-path")
		}
	}
	fmt.Println()
}
