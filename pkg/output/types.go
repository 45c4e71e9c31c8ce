package output

// ReportEntry represents one installed package row in a project report.
//
// Fields:
//   - Name: Package name (scoped names include the scope prefix)
//   - Version: Installed version read from the package manifest
//   - Type: Dependency type ("prod", "dev", or "transitive")
//   - Parent: Installing package for transitive dependencies, empty otherwise
type ReportEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Type    string `json:"type"`
	Parent  string `json:"parent,omitempty"`
}

// DuplicateEntry represents a package installed at more than one version.
//
// Fields:
//   - Name: Package name
//   - Versions: Distinct versions found, sorted ascending in semver order
//   - Newest: The highest version among them
type DuplicateEntry struct {
	Name     string   `json:"name"`
	Versions []string `json:"versions"`
	Newest   string   `json:"newest"`
}

// ReportSummary holds aggregate counts for a project report.
//
// Fields:
//   - Project: Absolute path of the reported project
//   - Total: Total number of installed packages
//   - Direct: Count of packages declared under dependencies
//   - Dev: Count of packages declared under devDependencies
//   - Transitive: Count of packages not declared in the manifest
//   - Duplicates: Count of packages installed at multiple versions
type ReportSummary struct {
	Project    string `json:"project"`
	Total      int    `json:"total"`
	Direct     int    `json:"direct"`
	Dev        int    `json:"dev"`
	Transitive int    `json:"transitive"`
	Duplicates int    `json:"duplicates"`
}

// ReportResult is the complete structured output of the report command.
//
// Fields:
//   - Summary: Aggregate counts
//   - Packages: Per-package entries sorted by name
//   - DuplicateVersions: Packages installed at multiple versions
type ReportResult struct {
	Summary           ReportSummary    `json:"summary"`
	Packages          []ReportEntry    `json:"packages"`
	DuplicateVersions []DuplicateEntry `json:"duplicate_versions,omitempty"`
}
