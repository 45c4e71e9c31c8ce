package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkgmon/pkgmon/pkg/constants"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry("package.json", "node_modules")
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func makeProjectDir(t *testing.T, withDepDir bool) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{}`), 0o644))
	if withDepDir {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))
	}
	return dir
}

// waitFor drains events until one matches or the timeout elapses.
func waitFor(t *testing.T, r *Registry, match func(Event) bool) Event {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-r.Events():
			if match(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
			return Event{}
		}
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, true)

	require.NoError(t, r.Register(dir))
	require.NoError(t, r.Register(dir))

	assert.Len(t, r.Projects(), 1)
	assert.True(t, r.Registered(dir))
}

func TestEntryAddedForNewPackageDirectory(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, true)
	require.NoError(t, r.Register(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules", "lodash"), 0o755))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == EntryAdded })
	assert.Equal(t, "lodash", ev.Name)
	assert.Equal(t, filepath.Base(dir), ev.Project.Name)
}

func TestEntryRemovedForDeletedPackageDirectory(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, true)
	pkgDir := filepath.Join(dir, "node_modules", "lodash")
	require.NoError(t, os.Mkdir(pkgDir, 0o755))
	require.NoError(t, r.Register(dir))

	require.NoError(t, os.Remove(pkgDir))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == EntryRemoved })
	assert.Equal(t, "lodash", ev.Name)
}

func TestScopedPackagesReportFullName(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, true)
	require.NoError(t, r.Register(dir))

	scopeDir := filepath.Join(dir, "node_modules", "@babel")
	require.NoError(t, os.Mkdir(scopeDir, 0o755))
	// The scope watch attaches asynchronously from the Create event.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.Mkdir(filepath.Join(scopeDir, "core"), 0o755))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == EntryAdded })
	assert.Equal(t, "@babel/core", ev.Name)
}

func TestHiddenEntriesAreIgnored(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, true)
	require.NoError(t, r.Register(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules", ".bin"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules", "express"), 0o755))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == EntryAdded })
	assert.Equal(t, "express", ev.Name, "hidden entry must not surface before the real one")
}

func TestFileChangedForManifestWrite(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, true)
	require.NoError(t, r.Register(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"x"}`), 0o644))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == FileChanged })
	assert.Equal(t, "package.json", ev.Name)
}

func TestDependencyDirectoryWatchAttachesLazily(t *testing.T) {
	r := newTestRegistry(t)
	dir := makeProjectDir(t, false)
	require.NoError(t, r.Register(dir))

	depDir := filepath.Join(dir, "node_modules")
	require.NoError(t, os.Mkdir(depDir, 0o755))
	// The dependency watch attaches asynchronously from the Create event.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.Mkdir(filepath.Join(depDir, "lodash"), 0o755))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == EntryAdded })
	assert.Equal(t, "lodash", ev.Name)
}

func TestRegisterGlobalUsesPseudoProject(t *testing.T) {
	r := newTestRegistry(t)
	store := t.TempDir()

	require.NoError(t, r.RegisterGlobal(store))
	require.NoError(t, os.Mkdir(filepath.Join(store, "typescript"), 0o755))

	ev := waitFor(t, r, func(ev Event) bool { return ev.Kind == EntryAdded })
	assert.Equal(t, "typescript", ev.Name)
	assert.Equal(t, constants.GlobalProject, ev.Project.Name)
}

func TestCloseStopsEventDelivery(t *testing.T) {
	r, err := NewRegistry("package.json", "node_modules")
	require.NoError(t, err)
	dir := makeProjectDir(t, true)
	require.NoError(t, r.Register(dir))

	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "double close must be safe")

	_, open := <-r.Events()
	assert.False(t, open)

	assert.Error(t, r.Register(t.TempDir()))
}
