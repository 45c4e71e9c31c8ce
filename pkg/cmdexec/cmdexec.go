// Package cmdexec runs package manager commands through the user's shell.
// It supports multiline command strings executed sequentially, templated
// arguments, timeouts, and process group cleanup.
package cmdexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkgmon/pkgmon/pkg/warnings"
)

// getShell returns the user's shell and the args to run a command string.
//
// The SHELL environment variable is checked first so aliases and shell
// configuration are available; platform defaults apply otherwise.
//
// Returns:
//   - shell: The path to the shell executable
//   - args: The shell arguments needed to execute a command string
func getShell() (shell string, args []string) {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l", "-c"}
	}
	return getDefaultShell()
}

// ExecuteFunc is the function signature for command execution.
//
// Parameters:
//   - ctx: Context for cancellation
//   - commands: Multiline command string; lines run sequentially
//   - dir: Working directory, empty for the process default
//   - timeoutSeconds: Maximum execution time per line (0 for no timeout)
//   - replacements: Template variable replacements (e.g., {{package}})
//
// Returns:
//   - []byte: Stdout of the last executed line
//   - error: The first failure, including timeout and cancellation
type ExecuteFunc func(ctx context.Context, commands, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error)

// Execute is the command execution function.
//
// It can be replaced with a mock implementation for testing.
var Execute ExecuteFunc = executeCommands

// executeCommands runs each line of a multiline command string sequentially.
//
// It performs the following operations:
//   - Applies shell-escaped template replacements
//   - Splits the input into lines, joining backslash continuations
//   - Runs each line through the user's shell, stopping at the first failure
//   - Checks the context between lines so callers can cancel mid-sequence
//
// Parameters:
//   - ctx: Context for cancellation
//   - commands: Multiline command string
//   - dir: Working directory for command execution
//   - timeoutSeconds: Maximum execution time per line (0 for no timeout)
//   - replacements: Template variable replacements
//
// Returns:
//   - []byte: Stdout of the last executed line
//   - error: Error from the first failed line, or nil when all succeeded
func executeCommands(ctx context.Context, commands, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
	if strings.TrimSpace(commands) == "" {
		return nil, fmt.Errorf("no commands provided")
	}

	lines := parseCommandLines(applyReplacements(commands, replacements))

	var lastOutput []byte
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return lastOutput, err
		}
		output, err := executeCommand(ctx, line, dir, timeoutSeconds)
		if err != nil {
			return output, err
		}
		lastOutput = output
	}
	return lastOutput, nil
}

// parseCommandLines splits a multiline command string into executable lines.
//
// Blank lines are dropped and lines ending with a backslash are joined with
// the next line. Pipes within a line need no special handling; each line
// runs through the shell.
//
// Parameters:
//   - commands: Multiline command string (CRLF tolerated)
//
// Returns:
//   - []string: Executable command lines in input order
func parseCommandLines(commands string) []string {
	normalized := strings.ReplaceAll(commands, "\r\n", "\n")

	var (
		lines   []string
		pending strings.Builder
	)
	for _, raw := range strings.Split(normalized, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "\\") {
			// The fragment may carry a space before the backslash; trim it so
			// the joining space below is the only separator.
			pending.WriteString(strings.TrimSpace(strings.TrimSuffix(line, "\\")))
			pending.WriteString(" ")
			continue
		}
		pending.WriteString(line)
		lines = append(lines, strings.TrimSpace(pending.String()))
		pending.Reset()
	}
	if rest := strings.TrimSpace(pending.String()); rest != "" {
		lines = append(lines, rest)
	}
	return lines
}

// applyReplacements substitutes {{key}} placeholders with shell-escaped values.
//
// Parameters:
//   - commands: Command string containing template placeholders
//   - replacements: Map of template keys to replacement values
//
// Returns:
//   - string: Command string with every placeholder replaced
func applyReplacements(commands string, replacements map[string]string) string {
	result := commands
	for key, value := range replacements {
		result = strings.ReplaceAll(result, "{{"+key+"}}", shellEscape(value))
	}
	return result
}

// shellEscape escapes a string for safe interpolation into a shell command.
//
// Values made of safe characters pass through unquoted for readability;
// everything else is single-quoted with embedded quotes escaped.
//
// Parameters:
//   - s: String to escape
//
// Returns:
//   - string: Shell-safe representation of s
func shellEscape(s string) string {
	if s == "" {
		return "''"
	}

	safe := true
	for _, r := range s {
		if !isShellSafe(r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}

	var escaped strings.Builder
	escaped.WriteRune('\'')
	for _, r := range s {
		if r == '\'' {
			escaped.WriteString("'\\''")
		} else {
			escaped.WriteRune(r)
		}
	}
	escaped.WriteRune('\'')
	return escaped.String()
}

// isShellSafe reports whether a character never needs shell quoting.
func isShellSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_' || r == '.' ||
		r == '/' || r == '@' || r == ':' ||
		r == '+' || r == '='
}

// executeCommand runs one command line through the user's shell.
//
// The command runs in its own process group so all children can be killed
// on timeout, preventing orphaned processes.
//
// Parameters:
//   - ctx: Parent context; a timeout context is derived when requested
//   - cmdStr: Command line to execute
//   - dir: Working directory, empty for the process default
//   - timeoutSeconds: Maximum execution time (0 for no timeout)
//
// Returns:
//   - []byte: Stdout of the command
//   - error: Execution failure with stderr appended, or a timeout error
func executeCommand(ctx context.Context, cmdStr, dir string, timeoutSeconds int) ([]byte, error) {
	if strings.TrimSpace(cmdStr) == "" {
		return nil, fmt.Errorf("empty command")
	}

	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	shell, shellArgs := getShell()
	cmd := exec.CommandContext(ctx, shell, append(shellArgs, cmdStr)...)
	if dir != "" {
		cmd.Dir = dir
	}
	setProcGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded && timeoutSeconds > 0 {
			if killErr := killProcGroup(cmd); killErr != nil {
				warnings.Warnf("Warning: failed to kill process group on timeout: %v\n", killErr)
			}
			return nil, fmt.Errorf("command timed out after %d seconds: %w", timeoutSeconds, err)
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		if errMsg != "" {
			return nil, fmt.Errorf("%w: %s", err, errMsg)
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}
