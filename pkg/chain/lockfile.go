package chain

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
)

// lockFile is the typed decoding of a lock file, supporting both shapes the
// resolver understands:
//
//   - flat path table (package-lock.json v2/v3): entries keyed by a nested
//     install path ending in "node_modules/<name>"
//   - nested tree (package-lock.json v1): a recursive mapping of
//     name → {dependencies}
//
// Both sections may be present; the flat table is preferred because it
// records the actual on-disk install location.
type lockFile struct {
	Packages     map[string]lockPackage   `json:"packages"`
	Dependencies map[string]lockTreeEntry `json:"dependencies"`
}

// lockPackage is a flat-table entry. Only the version is retained; the
// dependency chain is encoded in the entry's key.
type lockPackage struct {
	Version string `json:"version"`
}

// lockTreeEntry is a nested-tree entry with its own subdependencies.
type lockTreeEntry struct {
	Version      string                   `json:"version"`
	Dependencies map[string]lockTreeEntry `json:"dependencies"`
}

// readLockFile reads and decodes a lock file.
//
// A missing lock file is not an error; resolution falls through to the
// Unknown classification.
//
// Parameters:
//   - path: Path to the lock file
//
// Returns:
//   - *lockFile: Decoded lock data, or nil when the file is absent
//   - error: Read or parse error for an existing file
func readLockFile(path string) (*lockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var lock lockFile
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

// findParent locates a package in the lock data and resolves its installing
// parent.
//
// The flat path table is searched first, then the nested tree. The returned
// parent is empty for top-level entries (hoisted installs), which still count
// as found.
//
// Parameters:
//   - name: The package name to locate
//
// Returns:
//   - string: The installing parent package, empty for top-level entries
//   - bool: true when the package appears anywhere in the lock data
func (l *lockFile) findParent(name string) (string, bool) {
	if parent, found := l.findFlatParent(name); found {
		return parent, true
	}
	return findTreeParent(l.Dependencies, name, "")
}

// findFlatParent searches the flat path table for the package.
//
// It performs the following operations:
//   - Sorts entry keys so multiple nested occurrences always resolve to the
//     same entry
//   - Matches keys equal to "node_modules/<name>" (top level, parent empty)
//     or ending in "/node_modules/<name>" (nested)
//   - For nested matches, takes the path segment immediately preceding the
//     suffix as the installing parent, honoring scoped names
//
// Parameters:
//   - name: The package name to locate
//
// Returns:
//   - string: The installing parent, empty for a top-level entry
//   - bool: true when a matching entry exists
func (l *lockFile) findFlatParent(name string) (string, bool) {
	if len(l.Packages) == 0 {
		return "", false
	}

	suffix := "node_modules/" + name

	keys := make([]string, 0, len(l.Packages))
	for key := range l.Packages {
		// The "" key describes the project itself in v3 lock files.
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == suffix {
			return "", true
		}
		if strings.HasSuffix(key, "/"+suffix) {
			return parentFromPath(strings.TrimSuffix(key, "/"+suffix)), true
		}
	}

	return "", false
}

// parentFromPath extracts the installing package name from the remainder of
// a flat-table key once the "node_modules/<name>" suffix has been removed.
//
// The remainder ends in the parent's own install path, e.g.
// "node_modules/a" or "node_modules/@scope/b".
//
// Parameters:
//   - prefix: Key remainder ending in the parent's install path
//
// Returns:
//   - string: The parent package name, empty when it cannot be derived
func parentFromPath(prefix string) string {
	idx := strings.LastIndex(prefix, "node_modules/")
	if idx < 0 {
		return ""
	}
	parent := prefix[idx+len("node_modules/"):]
	return strings.Trim(parent, "/")
}

// findTreeParent depth-first searches the nested tree for the package,
// tracking the nearest ancestor name as the parent.
//
// Parameters:
//   - entries: The tree level to search
//   - name: The package name to locate
//   - ancestor: The name of the entry owning this level, empty at the root
//
// Returns:
//   - string: The nearest ancestor of the located package, empty at top level
//   - bool: true when the package appears in this subtree
func findTreeParent(entries map[string]lockTreeEntry, name, ancestor string) (string, bool) {
	if len(entries) == 0 {
		return "", false
	}

	if _, ok := entries[name]; ok {
		return ancestor, true
	}

	// Deterministic order keeps the resolved parent stable across runs.
	children := make([]string, 0, len(entries))
	for child := range entries {
		children = append(children, child)
	}
	sort.Strings(children)

	for _, child := range children {
		if parent, found := findTreeParent(entries[child].Dependencies, name, child); found {
			return parent, true
		}
	}

	return "", false
}
