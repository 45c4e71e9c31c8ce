// Package utils provides shared helpers for pattern matching, display
// formatting, and version handling.
package utils

import (
	"path/filepath"
	"regexp"
	"strings"
)

// MatchGlob checks if a path matches a glob pattern.
//
// It performs the following operations:
//   - Handles negation patterns (prefixed with "!")
//   - Normalizes both path and pattern to forward slashes
//   - Uses regex conversion for patterns containing "**"
//   - Falls back to filepath.Match for simple patterns
//
// Parameters:
//   - path: The path to test (relative, slash-normalized internally)
//   - pattern: The glob pattern (supports *, ?, ** and "!" negation)
//
// Returns:
//   - bool: true if the path matches the pattern
func MatchGlob(path, pattern string) bool {
	negate := false
	if strings.HasPrefix(pattern, "!") {
		negate = true
		pattern = pattern[1:]
	}

	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	var matched bool

	if strings.Contains(pattern, "**") {
		regexPattern := globToRegex(pattern)
		matched, _ = regexp.MatchString(regexPattern, path)
	} else {
		var err error
		matched, err = filepath.Match(pattern, path)
		if err != nil {
			regexPattern := globToRegex(pattern)
			matched, _ = regexp.MatchString(regexPattern, path)
		}
	}

	if negate {
		return !matched
	}
	return matched
}

// globToRegex converts a glob pattern to a regular expression.
//
// Supported constructs:
//   - "**/" matches any number of leading directories (including none)
//   - "**" matches anything including separators
//   - "*" matches anything except a separator
//   - "?" matches a single character
//
// Parameters:
//   - pattern: The glob pattern to convert
//
// Returns:
//   - string: An anchored regular expression equivalent to the glob
func globToRegex(pattern string) string {
	pattern = filepath.ToSlash(pattern)
	var builder strings.Builder
	builder.WriteString("^")

	for i := 0; i < len(pattern); {
		if strings.HasPrefix(pattern[i:], "**/") {
			builder.WriteString("(?:.*/)?")
			i += 3
			continue
		}
		if strings.HasPrefix(pattern[i:], "**") {
			builder.WriteString(".*")
			i += 2
			continue
		}
		switch pattern[i] {
		case '*':
			builder.WriteString("[^/]*")
		case '?':
			builder.WriteString(".")
		default:
			builder.WriteString(regexp.QuoteMeta(string(pattern[i])))
		}
		i++
	}

	builder.WriteString("$")
	return builder.String()
}

// MatchPatterns checks if a path matches any include pattern and no exclude pattern.
//
// Exclusions take precedence: a path matching any exclude pattern is rejected
// even when an include pattern also matches.
//
// Parameters:
//   - path: The path to test
//   - includes: Glob patterns that qualify a path
//   - excludes: Glob patterns that disqualify a path
//
// Returns:
//   - bool: true if the path matches an include and no exclude
func MatchPatterns(path string, includes, excludes []string) bool {
	for _, pattern := range excludes {
		if MatchGlob(path, pattern) {
			return false
		}
	}

	for _, pattern := range includes {
		if MatchGlob(path, pattern) {
			return true
		}
	}

	return false
}

// Contains reports whether a string slice contains an exact item.
//
// Parameters:
//   - slice: The slice to search
//   - item: The value to look for
//
// Returns:
//   - bool: true if item is present in slice
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// TrimAndSplit splits a string by a separator and trims whitespace from each part.
//
// Empty parts after trimming are dropped.
//
// Parameters:
//   - s: The string to split
//   - sep: The separator to split on
//
// Returns:
//   - []string: Non-empty trimmed parts, or nil when none remain
func TrimAndSplit(s, sep string) []string {
	var parts []string
	for _, part := range strings.Split(s, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
