package executor

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// maxOutputLen caps the output handed back to the model.
const maxOutputLen = 50000

// Result describes a finished command. A non-zero ExitCode is a normal
// outcome, not an error.
type Result struct {
	Command  string
	Output   string   // merged stdout/stderr
	Lines    []string // streamed lines, streaming mode only
	ExitCode int
	Duration time.Duration
	Streamed bool
}

// Success reports whether the command exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// String formats the result as the text reported back to the model.
func (r *Result) String() string {
	output, truncated := truncateOutput(r.Output)
	if truncated {
		output += "\n... (output truncated)\n"
	}

	if r.Streamed {
		if r.ExitCode != 0 {
			return fmt.Sprintf("Command completed with non-zero exit code: %d\nOutput:\n%s", r.ExitCode, output)
		}
		return fmt.Sprintf("Command completed successfully.\nOutput:\n%s", output)
	}

	if r.ExitCode != 0 {
		return fmt.Sprintf("Command failed with error code %d:\n%s", r.ExitCode, output)
	}
	if trimmed := strings.TrimSpace(output); trimmed != "" {
		return trimmed
	}
	return "Command executed successfully."
}

func truncateOutput(s string) (string, bool) {
	if len(s) <= maxOutputLen {
		return s, false
	}
	cut := maxOutputLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}

// TimeoutError is returned when a command exceeds Options.Timeout.
// Partial holds whatever output was produced before the deadline.
type TimeoutError struct {
	Command string
	Timeout time.Duration
	Partial *Result
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s: %s", e.Timeout, e.Command)
}
