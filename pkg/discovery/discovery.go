// Package discovery locates projects across a bounded set of root candidate
// directories by scanning for manifest files.
//
// Discovery is best-effort: roots that are missing, unreadable, or slow to
// answer are silently excluded, and the scan is bounded by depth and
// exclusion rules so it terminates quickly even on large home directories.
package discovery

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkgmon/pkgmon/pkg/utils"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

// Options configures a discovery scan.
//
// Fields:
//   - Roots: Root candidate directories; entries starting with "~" expand to
//     the home directory
//   - Manifest: Manifest file name identifying a project (e.g., "package.json")
//   - MaxDepth: Maximum depth below a root to descend (root itself is depth 0)
//   - Exclude: Directory names never descended into
//   - ProbeTimeout: Per-root accessibility budget; a root that does not
//     answer within it is skipped for this scan
type Options struct {
	Roots        []string
	Manifest     string
	MaxDepth     int
	Exclude      []string
	ProbeTimeout time.Duration
}

// statFunc is an injection seam for tests simulating slow or failing roots.
var statFunc = os.Stat

// Discover concurrently scans all root candidates for project directories.
//
// It performs the following operations:
//   - Expands and deduplicates the root candidates
//   - Probes each root for existence and readability under ProbeTimeout,
//     all roots in parallel; failures exclude only that root
//   - Walks each accessible root up to MaxDepth, skipping excluded and
//     hidden directories and never following symbolic links
//   - Merges results from all roots into one sorted, deduplicated list
//
// Discovery never fails: an empty result is returned when nothing is found
// or the context is cancelled mid-scan.
//
// Parameters:
//   - ctx: Context bounding the whole scan
//   - opts: Scan configuration
//
// Returns:
//   - []string: Sorted absolute paths of directories containing a manifest
func Discover(ctx context.Context, opts Options) []string {
	roots := expandRoots(opts.Roots)
	verbose.Debugf("Discovery: scanning %d root candidates (depth %d)", len(roots), opts.MaxDepth)

	var (
		mu    sync.Mutex
		found = make(map[string]struct{})
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, root := range roots {
		g.Go(func() error {
			if !probe(root, opts.ProbeTimeout) {
				verbose.Debugf("Discovery: root %q skipped (inaccessible or slow)", root)
				return nil
			}

			projects := scanRoot(ctx, root, opts)
			if len(projects) == 0 {
				return nil
			}

			mu.Lock()
			for _, p := range projects {
				found[p] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	// Workers only report nil; Wait is for completion, not errors.
	_ = g.Wait()

	merged := make([]string, 0, len(found))
	for p := range found {
		merged = append(merged, p)
	}
	sort.Strings(merged)

	verbose.Debugf("Discovery: found %d projects", len(merged))
	return merged
}

// probe checks that a directory exists and answers within the timeout.
//
// The stat runs in its own goroutine and is raced against a timer; a slow
// filesystem (e.g., a dead network mount) is abandoned, not cancelled, so
// one unresponsive root cannot stall the scan of the others.
//
// Parameters:
//   - dir: Directory to probe
//   - timeout: Maximum time to wait for the answer
//
// Returns:
//   - bool: true when the directory exists and answered in time
func probe(dir string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = time.Second
	}

	done := make(chan bool, 1)
	go func() {
		info, err := statFunc(dir)
		done <- err == nil && info.IsDir()
	}()

	select {
	case ok := <-done:
		return ok
	case <-time.After(timeout):
		return false
	}
}

// scanRoot walks one root for manifest files up to the configured depth.
//
// Walk errors (permission denied, vanished entries) skip the offending
// subtree; they never fail the scan.
//
// Parameters:
//   - ctx: Context; cancellation stops the walk early
//   - root: Accessible root directory
//   - opts: Scan configuration
//
// Returns:
//   - []string: Project directories found under this root
func scanRoot(ctx context.Context, root string, opts Options) []string {
	var projects []string

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 3
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if walkErr != nil {
			verbose.Tracef("Discovery: skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if excludedDir(name, opts.Exclude) {
				return fs.SkipDir
			}
			// A project directory at exactly maxDepth still counts; only
			// deeper directories are pruned.
			if depthBelow(root, path) > maxDepth {
				return fs.SkipDir
			}
			return nil
		}

		// WalkDir does not follow symlinks; a symlinked manifest still
		// identifies its containing directory as a project.
		if d.Name() == opts.Manifest {
			projects = append(projects, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		verbose.Debugf("Discovery: walk of %q ended early: %v", root, err)
	}

	return projects
}

// excludedDir reports whether a directory name is excluded from scanning.
//
// Hidden (dot-prefixed) directories are always excluded in addition to the
// configured names.
//
// Parameters:
//   - name: Base name of the directory
//   - exclude: Configured directory names to skip
//
// Returns:
//   - bool: true when the directory must not be descended into
func excludedDir(name string, exclude []string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return utils.Contains(exclude, name)
}

// depthBelow computes how many levels path sits below root.
//
// Parameters:
//   - root: The walk root
//   - path: A directory under root
//
// Returns:
//   - int: Number of path separators between root and path
func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// expandRoots expands "~" prefixes, resolves absolute paths, and deduplicates.
//
// Parameters:
//   - roots: Configured root candidates
//
// Returns:
//   - []string: Cleaned absolute root paths in first-seen order
func expandRoots(roots []string) []string {
	home, _ := os.UserHomeDir()

	var (
		out  []string
		seen = make(map[string]struct{})
	)
	for _, root := range roots {
		if root == "" {
			continue
		}
		if root == "~" {
			root = home
		} else if strings.HasPrefix(root, "~/") {
			root = filepath.Join(home, root[2:])
		}
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		if _, dup := seen[root]; dup {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	return out
}

// Batches splits paths into registration batches of at most size entries.
//
// Registering watches in small batches bounds the number of watch handles
// opening at once when a scan returns hundreds of projects.
//
// Parameters:
//   - paths: Paths to split
//   - size: Maximum batch size; values < 1 default to 5
//
// Returns:
//   - [][]string: Consecutive batches preserving input order
func Batches(paths []string, size int) [][]string {
	if size < 1 {
		size = 5
	}

	var batches [][]string
	for start := 0; start < len(paths); start += size {
		end := start + size
		if end > len(paths) {
			end = len(paths)
		}
		batches = append(batches, paths[start:end])
	}
	return batches
}
