package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgmon/pkgmon/pkg/output"
)

// makeReportProject builds a project with one prod, one dev, and one
// transitive dependency installed.
func makeReportProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	manifest := `{"dependencies": {"debug": "^4.3.0"}, "devDependencies": {"typescript": "^5.4.0"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644))

	lock := `{
		"packages": {
			"node_modules/debug": {"version": "4.3.4"},
			"node_modules/ms": {"version": "2.1.3"},
			"node_modules/typescript": {"version": "5.4.5"}
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package-lock.json"), []byte(lock), 0o644))

	for name, version := range map[string]string{"debug": "4.3.4", "ms": "2.1.3", "typescript": "5.4.5"} {
		pkgDir := filepath.Join(dir, "node_modules", name)
		require.NoError(t, os.MkdirAll(pkgDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"),
			[]byte(`{"version":"`+version+`"}`), 0o644))
	}
	return dir
}

func TestReportTableOutput(t *testing.T) {
	oldOutput := reportOutputFlag
	defer func() { reportOutputFlag = oldOutput }()

	dir := makeReportProject(t)

	out, err := runCommand(t, "report", "-d", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "debug")
	assert.Contains(t, out, "typescript")
	assert.Contains(t, out, "3 packages: 1 prod, 1 dev, 1 transitive")
}

func TestReportJSONOutput(t *testing.T) {
	oldOutput := reportOutputFlag
	defer func() { reportOutputFlag = oldOutput }()

	dir := makeReportProject(t)

	out, err := runCommand(t, "report", "-d", dir, "-o", "json")
	require.NoError(t, err)

	var result output.ReportResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.Transitive)
}

func TestReportMissingDependencyDir(t *testing.T) {
	oldOutput := reportOutputFlag
	defer func() { reportOutputFlag = oldOutput }()

	dir := t.TempDir()

	_, err := runCommand(t, "report", "-d", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node_modules")
}
