// Package verbose provides leveled debug logging with documentation references.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Verbosity levels. Higher levels include all lower-level output.
const (
	// LevelOff disables all verbose output.
	LevelOff = 0

	// LevelInfo prints high-level progress messages.
	LevelInfo = 1

	// LevelDebug prints per-step diagnostic messages.
	LevelDebug = 2

	// LevelTrace prints per-item messages (noisy; one line per file or event).
	LevelTrace = 3
)

var (
	mu         sync.RWMutex
	level      int
	suppressed bool
	writer     io.Writer = os.Stderr
)

// Enable turns on verbose logging at debug level.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Raises the level to LevelDebug unless a higher level is already set
//   - Releases the write lock
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	if level < LevelDebug {
		level = LevelDebug
	}
}

// Disable turns off verbose logging and prevents debug messages from being printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	level = LevelOff
}

// SetLevel sets the verbosity level explicitly.
//
// Parameters:
//   - l: One of LevelOff, LevelInfo, LevelDebug, or LevelTrace
func SetLevel(l int) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// IsEnabled returns whether verbose logging is currently enabled at any level.
//
// Returns:
//   - bool: true if verbose logging is enabled and not suppressed
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return level > LevelOff && !suppressed
}

// Suppress temporarily silences verbose output without changing the level.
//
// This is used when a caller needs to probe a parser or resolver without
// flooding the log; pair with Unsuppress.
func Suppress() {
	mu.Lock()
	defer mu.Unlock()
	suppressed = true
}

// Unsuppress re-enables verbose output after a Suppress call.
func Unsuppress() {
	mu.Lock()
	defer mu.Unlock()
	suppressed = false
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// state returns the current level, suppression flag, and writer under one lock.
func state() (int, bool, io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return level, suppressed, writer
}

// emit writes a prefixed message when the current level allows it.
func emit(min int, prefix, format string, args ...any) {
	l, s, w := state()
	if s || l < min {
		return
	}
	_, _ = fmt.Fprintf(w, prefix+format+"\n", args...)
}

// Printf prints a formatted verbose message at info level.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	emit(LevelInfo, "[DEBUG] ", strings.TrimSuffix(format, "\n"), args...)
}

// Info prints an informational verbose message at info level.
//
// Parameters:
//   - msg: The message string to print
func Info(msg string) {
	emit(LevelInfo, "[DEBUG] ", "%s", msg)
}

// Infof prints a formatted informational verbose message at info level.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	emit(LevelInfo, "[DEBUG] ", strings.TrimSuffix(format, "\n"), args...)
}

// Debugf prints a formatted message at debug level.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Debugf(format string, args ...any) {
	emit(LevelDebug, "[DEBUG] ", strings.TrimSuffix(format, "\n"), args...)
}

// Tracef prints a formatted message at trace level.
//
// Trace output is per-item (one line per file, event, or poll) and is only
// useful when diagnosing watcher or discovery behavior.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Tracef(format string, args ...any) {
	emit(LevelTrace, "[TRACE] ", strings.TrimSuffix(format, "\n"), args...)
}

// DocRef represents a documentation reference for a specific topic.
//
// Fields:
//   - Topic: A human-readable name for the documentation topic
//   - DocPath: The relative path to the documentation file or section
//   - Hint: A brief description of what the documentation covers
type DocRef struct {
	Topic   string
	DocPath string
	Hint    string
}

// Common documentation references.
var docRefs = map[string]DocRef{
	"config": {
		Topic:   "Configuration",
		DocPath: "docs/configuration.md",
		Hint:    "See configuration guide for YAML schema and options",
	},
	"discovery": {
		Topic:   "Project Discovery",
		DocPath: "docs/configuration.md#discovery",
		Hint:    "Configure root candidates, scan depth, and exclusions",
	},
	"tracker": {
		Topic:   "Installation Tracking",
		DocPath: "docs/configuration.md#tracker",
		Hint:    "Configure estimate heuristics and polling intervals",
	},
	"watch": {
		Topic:   "Watch Mode",
		DocPath: "docs/cli.md#watch",
		Hint:    "See local, universal, and quick watch modes",
	},
	"cli": {
		Topic:   "CLI Reference",
		DocPath: "docs/cli.md",
		Hint:    "See all available commands and flags",
	},
}

// WithDocRef prints a verbose message with a documentation reference if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the message with [DEBUG] prefix
//   - If the topic is found in docRefs, appends documentation reference and hint
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - topic: The documentation topic key (e.g., "config", "discovery")
//   - message: The main message to print
func WithDocRef(topic, message string) {
	l, s, w := state()
	if s || l < LevelInfo {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", message)
	if ref, ok := docRefs[strings.ToLower(topic)]; ok {
		_, _ = fmt.Fprintf(w, "        📖 %s: %s\n", ref.Topic, ref.DocPath)
		_, _ = fmt.Fprintf(w, "        💡 %s\n", ref.Hint)
	}
}

// WatchDegraded prints help for a project whose watch subscription failed.
//
// The project's monitoring degrades silently; this message explains what
// still works and how to recover, without interrupting other projects.
//
// Parameters:
//   - project: The name of the affected project
//   - err: The subscription error
func WatchDegraded(project string, err error) {
	l, s, w := state()
	if s || l < LevelInfo {
		return
	}
	_, _ = fmt.Fprintf(w, "[DEBUG] Watch degraded for project '%s': %v\n", project, err)
	_, _ = fmt.Fprintf(w, "        Other projects remain monitored.\n")
	_, _ = fmt.Fprintf(w, "        📖 See: docs/configuration.md#discovery\n")
}
