// Package report builds an inventory of a project's installed dependency
// tree: per-package rows, aggregate counts, and duplicate-version detection.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkgmon/pkgmon/pkg/chain"
	"github.com/pkgmon/pkgmon/pkg/output"
	"github.com/pkgmon/pkgmon/pkg/utils"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

// Dependency type values used in report rows.
const (
	TypeProd       = "prod"
	TypeDev        = "dev"
	TypeTransitive = "transitive"
)

// Options configures a report build.
//
// Fields:
//   - ProjectPath: The project directory to report on
//   - Manifest: Manifest file name (e.g., "package.json")
//   - LockFile: Lock file name used to resolve transitive parents
//   - DepDir: Dependency directory name (e.g., "node_modules")
type Options struct {
	ProjectPath string
	Manifest    string
	LockFile    string
	DepDir      string
}

// install is one package occurrence found anywhere in the dependency tree.
type install struct {
	name    string
	version string
	depth   int
}

// Build scans the project's dependency tree and assembles the report.
//
// It performs the following operations:
//   - Recursively walks the dependency directory, reading each installed
//     package's manifest for its version (nested trees included)
//   - Classifies unique packages as prod, dev, or transitive against the
//     project manifest, resolving installing parents from the lock file
//   - Detects packages installed at more than one version across the tree
//
// Parameters:
//   - opts: Report configuration
//
// Returns:
//   - *output.ReportResult: The assembled report
//   - error: Missing or unreadable dependency directory
func Build(opts Options) (*output.ReportResult, error) {
	root := filepath.Join(opts.ProjectPath, opts.DepDir)
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("no %s directory in %s (run an install first)", opts.DepDir, opts.ProjectPath)
	}

	var installs []install
	scanTree(root, opts, 0, &installs)
	verbose.Debugf("Report: found %d installed packages in %s", len(installs), root)

	declared, devDeclared := readDeclarations(filepath.Join(opts.ProjectPath, opts.Manifest))
	resolver := chain.NewResolver(opts.Manifest, opts.LockFile)

	result := &output.ReportResult{
		Summary: output.ReportSummary{Project: opts.ProjectPath},
	}

	for _, name := range uniqueNames(installs) {
		entry := output.ReportEntry{
			Name:    name,
			Version: shallowestVersion(installs, name),
		}
		switch {
		case declared[name]:
			entry.Type = TypeProd
			result.Summary.Direct++
		case devDeclared[name]:
			entry.Type = TypeDev
			result.Summary.Dev++
		default:
			entry.Type = TypeTransitive
			entry.Parent = resolver.Resolve(name, opts.ProjectPath).Parent
			result.Summary.Transitive++
		}
		result.Packages = append(result.Packages, entry)
	}
	result.Summary.Total = len(result.Packages)

	result.DuplicateVersions = findDuplicates(installs)
	result.Summary.Duplicates = len(result.DuplicateVersions)

	return result, nil
}

// scanTree collects installed packages under one dependency directory,
// recursing into scope directories and nested dependency directories.
func scanTree(dir string, opts Options, depth int, installs *[]install) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		verbose.Tracef("Report: cannot read %s: %v", dir, err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		if strings.HasPrefix(name, "@") {
			scanScope(filepath.Join(dir, name), name, opts, depth, installs)
			continue
		}

		recordInstall(filepath.Join(dir, name), name, opts, depth, installs)
	}
}

// scanScope collects the packages inside one "@scope" directory.
func scanScope(scopeDir, scope string, opts Options, depth int, installs *[]install) {
	entries, err := os.ReadDir(scopeDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		recordInstall(filepath.Join(scopeDir, entry.Name()), scope+"/"+entry.Name(), opts, depth, installs)
	}
}

// recordInstall records one installed package and descends into its own
// nested dependency directory.
func recordInstall(pkgDir, name string, opts Options, depth int, installs *[]install) {
	*installs = append(*installs, install{
		name:    name,
		version: readVersion(filepath.Join(pkgDir, opts.Manifest)),
		depth:   depth,
	})

	nested := filepath.Join(pkgDir, opts.DepDir)
	if info, err := os.Stat(nested); err == nil && info.IsDir() {
		scanTree(nested, opts, depth+1, installs)
	}
}

// readVersion extracts the version field from an installed package manifest.
func readVersion(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var m struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return ""
	}
	return m.Version
}

// readDeclarations reads the project manifest's declared dependency names.
func readDeclarations(path string) (deps, devDeps map[string]bool) {
	deps = make(map[string]bool)
	devDeps = make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return deps, devDeps
	}
	var m struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return deps, devDeps
	}
	for name := range m.Dependencies {
		deps[name] = true
	}
	for name := range m.DevDependencies {
		devDeps[name] = true
	}
	return deps, devDeps
}

// uniqueNames returns the sorted distinct package names.
func uniqueNames(installs []install) []string {
	seen := make(map[string]struct{}, len(installs))
	for _, inst := range installs {
		seen[inst.name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shallowestVersion returns the version of the hoisted (shallowest) install.
func shallowestVersion(installs []install, name string) string {
	best := install{depth: -1}
	for _, inst := range installs {
		if inst.name != name {
			continue
		}
		if best.depth < 0 || inst.depth < best.depth {
			best = inst
		}
	}
	return best.version
}

// findDuplicates detects packages installed at more than one version.
//
// Versions are sorted ascending in semver order; the last entry is reported
// as the newest.
func findDuplicates(installs []install) []output.DuplicateEntry {
	versions := make(map[string]map[string]struct{})
	for _, inst := range installs {
		if inst.version == "" {
			continue
		}
		if versions[inst.name] == nil {
			versions[inst.name] = make(map[string]struct{})
		}
		versions[inst.name][inst.version] = struct{}{}
	}

	var duplicates []output.DuplicateEntry
	for name, set := range versions {
		if len(set) < 2 {
			continue
		}
		list := make([]string, 0, len(set))
		for v := range set {
			list = append(list, v)
		}
		sort.Slice(list, func(i, j int) bool {
			return utils.CompareVersions(list[i], list[j]) < 0
		})
		duplicates = append(duplicates, output.DuplicateEntry{
			Name:     name,
			Versions: list,
			Newest:   list[len(list)-1],
		})
	}

	sort.Slice(duplicates, func(i, j int) bool {
		return duplicates[i].Name < duplicates[j].Name
	})
	return duplicates
}
