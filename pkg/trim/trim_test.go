package trim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"lodash/package.json":       `{"version":"4.17.21"}`,
		"lodash/README.md":          "# lodash",
		"lodash/index.js":           "module.exports = {}",
		"lodash/index.js.map":       "{}",
		"lodash/types/index.d.ts":   "export {}",
		"debug/src/browser.ts":      "export {}",
		"debug/test/spec.js":        "test()",
		"debug/test/fixture/a.json": "{}",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func defaultPatterns() []string {
	return []string{"**/*.md", "**/*.map", "**/*.ts", "**/test/**"}
}

func TestRunDryRunReportsWithoutDeleting(t *testing.T) {
	root := makeTree(t)

	result, err := Run(Options{
		Root:     root,
		Patterns: defaultPatterns(),
		Exclude:  []string{"**/*.d.ts"},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"lodash/README.md",
		"lodash/index.js.map",
		"debug/src/browser.ts",
		"debug/test/fixture",
		"debug/test/spec.js",
	}, result.Matched)
	assert.Equal(t, 0, result.Removed)
	assert.Greater(t, result.Bytes, int64(0))

	_, err = os.Stat(filepath.Join(root, "lodash", "README.md"))
	assert.NoError(t, err, "dry run must not delete")
}

func TestRunForceDeletesMatches(t *testing.T) {
	root := makeTree(t)

	result, err := Run(Options{
		Root:     root,
		Patterns: defaultPatterns(),
		Exclude:  []string{"**/*.d.ts"},
		Force:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, len(result.Matched), result.Removed)

	_, err = os.Stat(filepath.Join(root, "lodash", "README.md"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "debug", "test", "fixture"))
	assert.True(t, os.IsNotExist(err), "matched directories are removed whole")

	_, err = os.Stat(filepath.Join(root, "lodash", "index.js"))
	assert.NoError(t, err, "unmatched files survive")
	_, err = os.Stat(filepath.Join(root, "lodash", "types", "index.d.ts"))
	assert.NoError(t, err, "excluded files survive")
}

func TestRunMissingRoot(t *testing.T) {
	_, err := Run(Options{Root: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "87 B", FormatSize(87))
	assert.Equal(t, "2 KB", FormatSize(2048))
	assert.Equal(t, "1.5 MB", FormatSize(1572864))
}
