// Package warnings provides user-facing warning output with a swappable writer.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
	seen       = make(map[string]struct{})
)

// Warnf writes formatted warning messages to the configured warning writer.
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	w := warnWriter
	mu.RUnlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// WarnOnce writes a warning only the first time the given key is seen.
//
// Repeated watch failures or discovery timeouts for the same path would
// otherwise flood the terminal while the monitor runs.
//
// Parameters:
//   - key: Deduplication key (typically a path or project name)
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func WarnOnce(key, format string, args ...any) {
	mu.Lock()
	if _, dup := seen[key]; dup {
		mu.Unlock()
		return
	}
	seen[key] = struct{}{}
	w := warnWriter
	mu.Unlock()
	_, _ = fmt.Fprintf(w, format, args...)
}

// ResetOnce clears the WarnOnce deduplication state.
//
// Intended for tests that assert on warning output.
func ResetOnce() {
	mu.Lock()
	defer mu.Unlock()
	seen = make(map[string]struct{})
}

// WarningWriter returns the currently configured warning writer.
//
// Returns:
//   - io.Writer: The currently configured writer for warning messages
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Saves the previous warning writer for restoration
//   - Sets the new warning writer (defaults to os.Stderr if nil)
//   - Returns a function that restores the previous writer when called
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}
