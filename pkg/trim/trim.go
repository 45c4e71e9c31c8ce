// Package trim removes junk files from installed dependency trees.
//
// Junk is whatever the configured glob patterns match: documentation,
// source maps, test fixtures, and editor leftovers that ship inside
// published packages. Trimming is destructive, so the default run only
// reports what would be removed.
package trim

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkgmon/pkgmon/pkg/utils"
	"github.com/pkgmon/pkgmon/pkg/verbose"
	"github.com/pkgmon/pkgmon/pkg/warnings"
)

// removeFunc is an injection seam for tests.
var removeFunc = os.RemoveAll

// Options configures a trim run.
//
// Fields:
//   - Root: The dependency directory to trim
//   - Patterns: Glob patterns selecting junk (matched against paths relative
//     to Root, "**" supported)
//   - Exclude: Glob patterns protecting matches from removal
//   - Force: Whether to actually delete; false reports only
type Options struct {
	Root     string
	Patterns []string
	Exclude  []string
	Force    bool
}

// Result summarizes one trim run.
//
// Fields:
//   - Matched: Relative paths selected for removal, sorted
//   - Removed: How many entries were actually deleted
//   - Bytes: Total size of the matched entries
type Result struct {
	Matched []string
	Removed int
	Bytes   int64
}

// Run walks the dependency tree and removes (or reports) junk entries.
//
// It performs the following operations:
//   - Walks Root, matching every file and directory against the patterns
//   - Skips the subtree of a matched directory; removing the directory
//     covers its contents
//   - Sums the size of matched entries for the summary
//   - Deletes matches only when Force is set; failures warn and continue
//
// Parameters:
//   - opts: Trim configuration
//
// Returns:
//   - *Result: The run summary
//   - error: Walk failure on the root itself; per-entry errors only warn
func Run(opts Options) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == opts.Root {
				return walkErr
			}
			verbose.Tracef("Trim: skipping %s: %v", path, walkErr)
			return nil
		}
		if path == opts.Root {
			return nil
		}

		rel, err := filepath.Rel(opts.Root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !utils.MatchPatterns(rel, opts.Patterns, opts.Exclude) {
			return nil
		}

		result.Matched = append(result.Matched, rel)
		result.Bytes += entrySize(path, d)

		if opts.Force {
			if err := removeFunc(path); err != nil {
				warnings.Warnf("Warning: failed to remove %s: %v\n", rel, err)
			} else {
				result.Removed++
			}
		}

		if d.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.Matched)
	return result, nil
}

// entrySize returns the size of a matched entry, recursing into directories.
func entrySize(path string, d fs.DirEntry) int64 {
	if !d.IsDir() {
		if info, err := d.Info(); err == nil {
			return info.Size()
		}
		return 0
	}

	var total int64
	_ = filepath.WalkDir(path, func(_ string, child fs.DirEntry, err error) error {
		if err != nil || child.IsDir() {
			return nil
		}
		if info, err := child.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

// FormatSize renders a byte count in a compact human unit.
//
// Parameters:
//   - bytes: The byte count
//
// Returns:
//   - string: e.g., "1.4 MB", "312 KB", "87 B"
func FormatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return trimZero(fmt.Sprintf("%.1f", float64(bytes)/(1<<20))) + " MB"
	case bytes >= 1<<10:
		return trimZero(fmt.Sprintf("%.1f", float64(bytes)/(1<<10))) + " KB"
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// trimZero drops a trailing ".0" from a formatted value.
func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
