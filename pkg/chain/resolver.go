// Package chain classifies installing packages as user-requested, transitive,
// or unknown by reading a project's manifest and, if necessary, its lock file.
//
// Classification is a pure read: all file errors are caught and downgraded to
// an Unknown classification so that a broken manifest in one project can
// never interrupt monitoring.
package chain

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/iancoleman/orderedmap"
	"github.com/pkgmon/pkgmon/pkg/constants"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

// Kind classifies why a package is installing.
type Kind string

const (
	// KindUserRequested means the package is declared in the project manifest.
	KindUserRequested Kind = constants.ChainUserRequested

	// KindTransitive means the package is pulled in by another package.
	KindTransitive Kind = constants.ChainTransitive

	// KindUnknown means the installation source could not be determined.
	KindUnknown Kind = constants.ChainUnknown
)

// Reason strings attached to classifications.
const (
	// ReasonUnknownSource is used when neither manifest nor lock file mention
	// the package.
	ReasonUnknownSource = "installation source unknown"

	// ReasonUnreadable is used when the manifest or lock file exists but
	// could not be read or parsed.
	ReasonUnreadable = "could not analyze dependency chain"

	// ReasonUnknownPackage is used for lock-file entries whose installing
	// parent could not be resolved (e.g., hoisted top-level entries).
	ReasonUnknownPackage = "unknown package"
)

// Info is the immutable classification of one (project, package) pair.
//
// It is computed once at detection time and not re-derived during the life
// of an installation.
//
// Fields:
//   - Kind: UserRequested, Transitive, or Unknown
//   - Parent: The installing package for transitive dependencies, else empty
//   - Reason: Human-readable explanation suitable for a status line
type Info struct {
	Kind   Kind
	Parent string
	Reason string
}

// Resolver resolves dependency-chain information for monitored projects.
//
// It caches the ordered top-level dependency set per project; the cache is
// invalidated when the project's manifest changes.
type Resolver struct {
	mu       sync.RWMutex
	manifest string
	lockFile string
	topLevel map[string][]string
}

// NewResolver creates a resolver for the given manifest and lock file names.
//
// Parameters:
//   - manifest: Manifest file name (e.g., "package.json")
//   - lockFile: Lock file name (e.g., "package-lock.json")
//
// Returns:
//   - *Resolver: A resolver ready for use
func NewResolver(manifest, lockFile string) *Resolver {
	return &Resolver{
		manifest: manifest,
		lockFile: lockFile,
		topLevel: make(map[string][]string),
	}
}

// manifestFile mirrors the dependency declarations of a project manifest.
type manifestFile struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Resolve classifies a package name for the given project.
//
// It performs the following operations:
//   - Step 1: Reads the project manifest; packages declared under
//     dependencies or devDependencies are UserRequested
//   - Step 2: Reads the lock file and searches both supported shapes
//     (flat path table and nested tree) for the package, resolving the
//     installing parent when possible
//   - Step 3: Falls back to Unknown when neither file mentions the package
//
// All read and parse errors are downgraded to an Unknown classification;
// Resolve never fails.
//
// Parameters:
//   - packageName: The installing package (scoped names included)
//   - projectPath: Absolute path of the project directory
//
// Returns:
//   - Info: The classification with parent and reason
func (r *Resolver) Resolve(packageName, projectPath string) Info {
	declared, err := r.readManifest(projectPath)
	if err != nil {
		verbose.Debugf("Chain: manifest unreadable for %s: %v", projectPath, err)
		return Info{Kind: KindUnknown, Reason: ReasonUnreadable}
	}
	if declared != nil {
		if _, ok := declared.Dependencies[packageName]; ok {
			verbose.Tracef("Chain: %q declared in dependencies of %s", packageName, projectPath)
			return Info{Kind: KindUserRequested, Reason: "declared in manifest"}
		}
		if _, ok := declared.DevDependencies[packageName]; ok {
			verbose.Tracef("Chain: %q declared in devDependencies of %s", packageName, projectPath)
			return Info{Kind: KindUserRequested, Reason: "declared in manifest"}
		}
	}

	lock, err := readLockFile(filepath.Join(projectPath, r.lockFile))
	if err != nil {
		verbose.Debugf("Chain: lock file unreadable for %s: %v", projectPath, err)
		return Info{Kind: KindUnknown, Reason: ReasonUnreadable}
	}
	if lock != nil {
		if parent, found := lock.findParent(packageName); found {
			if parent == "" {
				return Info{Kind: KindTransitive, Reason: ReasonUnknownPackage}
			}
			verbose.Tracef("Chain: %q installed by %q in %s", packageName, parent, projectPath)
			return Info{Kind: KindTransitive, Parent: parent, Reason: "dependency of " + parent}
		}
	}

	return Info{Kind: KindUnknown, Reason: ReasonUnknownSource}
}

// readManifest reads and decodes the project manifest.
//
// A missing manifest is not an error (the project may be mid-initialization);
// it returns nil declarations so resolution falls through to the lock file.
//
// Parameters:
//   - projectPath: Absolute path of the project directory
//
// Returns:
//   - *manifestFile: Decoded declarations, or nil when the file is absent
//   - error: Read or parse error for an existing file
func (r *Resolver) readManifest(projectPath string) (*manifestFile, error) {
	path := filepath.Join(projectPath, r.manifest)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var m manifestFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// TopLevel returns the project's top-level dependency names in declaration order.
//
// It performs the following operations:
//   - Returns the cached set when present
//   - Otherwise decodes the manifest with an order-preserving map so the
//     returned names follow the manifest's declaration order
//   - Caches the result until Invalidate is called for the project
//
// Parameters:
//   - projectPath: Absolute path of the project directory
//
// Returns:
//   - []string: Ordered dependency names (dependencies then devDependencies);
//     nil when the manifest is absent or unreadable
func (r *Resolver) TopLevel(projectPath string) []string {
	r.mu.RLock()
	cached, ok := r.topLevel[projectPath]
	r.mu.RUnlock()
	if ok {
		return cached
	}

	names := readOrderedDependencies(filepath.Join(projectPath, r.manifest))

	r.mu.Lock()
	r.topLevel[projectPath] = names
	r.mu.Unlock()

	return names
}

// Invalidate drops the cached top-level dependency set for a project.
//
// Called when the project's manifest changes on disk.
//
// Parameters:
//   - projectPath: Absolute path of the project directory
func (r *Resolver) Invalidate(projectPath string) {
	r.mu.Lock()
	delete(r.topLevel, projectPath)
	r.mu.Unlock()
	verbose.Debugf("Chain: invalidated top-level cache for %s", projectPath)
}

// readOrderedDependencies decodes dependency names preserving manifest order.
//
// Parameters:
//   - path: Path to the manifest file
//
// Returns:
//   - []string: Dependency names in declaration order, nil on any error
func readOrderedDependencies(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	root := orderedmap.New()
	if err := json.Unmarshal(data, root); err != nil {
		return nil
	}

	var names []string
	for _, section := range []string{"dependencies", "devDependencies"} {
		raw, ok := root.Get(section)
		if !ok {
			continue
		}
		deps, ok := raw.(orderedmap.OrderedMap)
		if !ok {
			continue
		}
		names = append(names, deps.Keys()...)
	}
	return names
}
