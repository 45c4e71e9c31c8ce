package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeProject builds a project with a hoisted tree, one nested duplicate
// (ms under debug), a scoped package, and a hidden .bin directory.
func makeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	manifest := `{
		"name": "fixture",
		"dependencies": {"lodash": "^4.17.0", "debug": "^4.3.0"},
		"devDependencies": {"typescript": "^5.4.0"}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644))

	lock := `{
		"packages": {
			"": {},
			"node_modules/lodash": {"version": "4.17.21"},
			"node_modules/debug": {"version": "4.3.4"},
			"node_modules/ms": {"version": "2.1.3"},
			"node_modules/debug/node_modules/ms": {"version": "2.1.2"},
			"node_modules/typescript": {"version": "5.4.5"},
			"node_modules/@babel/core": {"version": "7.24.0"}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package-lock.json"), []byte(lock), 0o644))

	installed := map[string]string{
		"node_modules/lodash":                "4.17.21",
		"node_modules/debug":                 "4.3.4",
		"node_modules/ms":                    "2.1.3",
		"node_modules/debug/node_modules/ms": "2.1.2",
		"node_modules/typescript":            "5.4.5",
		"node_modules/@babel/core":           "7.24.0",
	}
	for rel, version := range installed {
		pkgDir := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(pkgDir, 0o755))
		content := `{"version":"` + version + `"}`
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(content), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", ".bin"), 0o755))

	return dir
}

func defaultOptions(dir string) Options {
	return Options{
		ProjectPath: dir,
		Manifest:    "package.json",
		LockFile:    "package-lock.json",
		DepDir:      "node_modules",
	}
}

func TestBuildClassifiesPackages(t *testing.T) {
	dir := makeProject(t)

	result, err := Build(defaultOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, dir, result.Summary.Project)
	assert.Equal(t, 5, result.Summary.Total)
	assert.Equal(t, 2, result.Summary.Direct)
	assert.Equal(t, 1, result.Summary.Dev)
	assert.Equal(t, 2, result.Summary.Transitive)

	byName := make(map[string]string, len(result.Packages))
	for _, entry := range result.Packages {
		byName[entry.Name] = entry.Type
	}
	assert.Equal(t, TypeProd, byName["lodash"])
	assert.Equal(t, TypeProd, byName["debug"])
	assert.Equal(t, TypeDev, byName["typescript"])
	assert.Equal(t, TypeTransitive, byName["ms"])
	assert.Equal(t, TypeTransitive, byName["@babel/core"])
}

func TestBuildSortsPackagesByName(t *testing.T) {
	dir := makeProject(t)

	result, err := Build(defaultOptions(dir))
	require.NoError(t, err)

	names := make([]string, 0, len(result.Packages))
	for _, entry := range result.Packages {
		names = append(names, entry.Name)
	}
	assert.Equal(t, []string{"@babel/core", "debug", "lodash", "ms", "typescript"}, names)
}

func TestBuildResolvesTransitiveParent(t *testing.T) {
	dir := makeProject(t)

	result, err := Build(defaultOptions(dir))
	require.NoError(t, err)

	for _, entry := range result.Packages {
		if entry.Name == "ms" {
			assert.Equal(t, "debug", entry.Parent)
		}
	}
}

func TestBuildReportsShallowestVersion(t *testing.T) {
	dir := makeProject(t)

	result, err := Build(defaultOptions(dir))
	require.NoError(t, err)

	for _, entry := range result.Packages {
		if entry.Name == "ms" {
			assert.Equal(t, "2.1.3", entry.Version, "the hoisted install wins")
		}
	}
}

func TestBuildDetectsDuplicateVersions(t *testing.T) {
	dir := makeProject(t)

	result, err := Build(defaultOptions(dir))
	require.NoError(t, err)

	require.Len(t, result.DuplicateVersions, 1)
	dup := result.DuplicateVersions[0]
	assert.Equal(t, "ms", dup.Name)
	assert.Equal(t, []string{"2.1.2", "2.1.3"}, dup.Versions)
	assert.Equal(t, "2.1.3", dup.Newest)
	assert.Equal(t, 1, result.Summary.Duplicates)
}

func TestBuildMissingDependencyDir(t *testing.T) {
	dir := t.TempDir()

	_, err := Build(defaultOptions(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node_modules")
}

func TestBuildWithoutManifestTreatsAllAsTransitive(t *testing.T) {
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, "node_modules", "lodash")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(`{"version":"4.17.21"}`), 0o644))

	result, err := Build(defaultOptions(dir))
	require.NoError(t, err)

	require.Len(t, result.Packages, 1)
	assert.Equal(t, TypeTransitive, result.Packages[0].Type)
}

func TestShallowestVersion(t *testing.T) {
	installs := []install{
		{name: "ms", version: "2.1.2", depth: 1},
		{name: "ms", version: "2.1.3", depth: 0},
		{name: "other", version: "1.0.0", depth: 0},
	}

	assert.Equal(t, "2.1.3", shallowestVersion(installs, "ms"))
	assert.Equal(t, "", shallowestVersion(installs, "absent"))
}
