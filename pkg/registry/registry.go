// Package registry maintains filesystem watches over registered projects and
// turns raw notifications into classified events.
//
// One shared watcher backs all projects. Each registered project contributes
// a watch on its directory (for manifest writes and dependency directory
// creation) and a shallow watch on its dependency directory (for package
// entries appearing and vanishing). Scoped package directories get one extra
// level of watching so entries like "@scope/name" resolve to full names.
package registry

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/pkgmon/pkgmon/pkg/constants"
	"github.com/pkgmon/pkgmon/pkg/verbose"
)

// watchKind identifies what role a watched directory plays.
type watchKind int

const (
	watchProjectDir watchKind = iota
	watchDepDir
	watchScopeDir
)

// watchTarget maps a watched directory back to its owning project.
type watchTarget struct {
	kind    watchKind
	project string
	scope   string
}

// projectState is the registry's bookkeeping for one registered project.
type projectState struct {
	project    Project
	depWatched bool
}

// Registry is the shared watch registry for all monitored projects.
//
// Registration is idempotent per project path. All classification happens on
// a single event-loop goroutine; consumers read classified events from the
// channel returned by Events.
type Registry struct {
	manifest string
	depDir   string

	watcher *fsnotify.Watcher
	events  chan Event
	quit    chan struct{}
	done    chan struct{}

	mu       sync.Mutex
	projects map[string]*projectState
	watched  map[string]watchTarget
	closed   bool
}

// NewRegistry creates a registry and starts its event loop.
//
// Parameters:
//   - manifest: Manifest file name whose writes produce FileChanged events
//   - depDir: Dependency directory name watched for package entries
//
// Returns:
//   - *Registry: A running registry; callers must Close it
//   - error: Watcher creation failure
func NewRegistry(manifest, depDir string) (*Registry, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	r := &Registry{
		manifest: manifest,
		depDir:   depDir,
		watcher:  watcher,
		events:   make(chan Event, 64),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		projects: make(map[string]*projectState),
		watched:  make(map[string]watchTarget),
	}
	go r.loop()
	return r, nil
}

// Events returns the channel of classified events.
//
// The channel closes after Close once the event loop drains.
//
// Returns:
//   - <-chan Event: Classified events in observation order
func (r *Registry) Events() <-chan Event {
	return r.events
}

// Register subscribes a project for monitoring.
//
// It performs the following operations:
//   - Resolves the path to its absolute form, making registration idempotent
//     across differently spelled paths
//   - Watches the project directory for manifest writes and dependency
//     directory creation
//   - Watches the dependency directory shallowly when it already exists;
//     otherwise the watch attaches lazily when the directory is created
//
// A project whose directory cannot be watched degrades silently: the error
// is returned for logging but other projects are unaffected.
//
// Parameters:
//   - path: Project directory
//
// Returns:
//   - error: Watch subscription failure for this project
func (r *Registry) Register(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve project path %q: %w", path, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("registry is closed")
	}
	if _, ok := r.projects[abs]; ok {
		verbose.Tracef("Registry: %s already registered", abs)
		return nil
	}

	if err := r.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch project %q: %w", abs, err)
	}
	state := &projectState{
		project: Project{Path: abs, Name: filepath.Base(abs)},
	}
	r.projects[abs] = state
	r.watched[abs] = watchTarget{kind: watchProjectDir, project: abs}

	depPath := filepath.Join(abs, r.depDir)
	if err := r.watcher.Add(depPath); err == nil {
		state.depWatched = true
		r.watched[depPath] = watchTarget{kind: watchDepDir, project: abs}
	} else {
		verbose.Debugf("Registry: dependency directory not yet watchable for %s: %v", abs, err)
	}

	verbose.Debugf("Registry: registered project %s", abs)
	return nil
}

// RegisterGlobal subscribes the package manager's global store.
//
// The store directory is watched directly as a dependency directory and
// reported under the reserved "(global)" pseudo-project.
//
// Parameters:
//   - storePath: The global store directory (e.g., the npm prefix lib/node_modules)
//
// Returns:
//   - error: Watch subscription failure
func (r *Registry) RegisterGlobal(storePath string) error {
	abs, err := filepath.Abs(storePath)
	if err != nil {
		return fmt.Errorf("failed to resolve global store path %q: %w", storePath, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return fmt.Errorf("registry is closed")
	}
	if _, ok := r.projects[abs]; ok {
		return nil
	}

	if err := r.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch global store %q: %w", abs, err)
	}
	r.projects[abs] = &projectState{
		project:    Project{Path: abs, Name: constants.GlobalProject},
		depWatched: true,
	}
	r.watched[abs] = watchTarget{kind: watchDepDir, project: abs}

	verbose.Debugf("Registry: registered global store %s", abs)
	return nil
}

// Registered reports whether a project path is already subscribed.
//
// Parameters:
//   - path: Project directory
//
// Returns:
//   - bool: true when the path is registered
func (r *Registry) Registered(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.projects[abs]
	return ok
}

// Projects returns a snapshot of all registered projects.
//
// Returns:
//   - []Project: Registered projects in unspecified order
func (r *Registry) Projects() []Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Project, 0, len(r.projects))
	for _, state := range r.projects {
		out = append(out, state.project)
	}
	return out
}

// Close stops the watcher and closes the event channel.
//
// Returns:
//   - error: Watcher shutdown failure
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	// Unblocks the event loop if the consumer stopped reading first.
	close(r.quit)
	err := r.watcher.Close()
	<-r.done
	return err
}

// loop consumes raw watcher notifications until the watcher closes.
//
// All classification happens here, on one goroutine, so consumers observe
// events in filesystem order without locking.
func (r *Registry) loop() {
	defer close(r.done)
	defer close(r.events)

	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.classify(ev)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			verbose.Debugf("Registry: watcher error: %v", err)
			r.emit(Event{Kind: WatchError, Err: err})
		}
	}
}

// classify turns one raw notification into zero or more registry events.
func (r *Registry) classify(ev fsnotify.Event) {
	parent := filepath.Dir(ev.Name)
	base := filepath.Base(ev.Name)

	r.mu.Lock()
	target, ok := r.watched[parent]
	var project Project
	if ok {
		if state, exists := r.projects[target.project]; exists {
			project = state.project
		}
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	verbose.Tracef("Registry: %s %s (in %s)", ev.Op, base, parent)

	switch target.kind {
	case watchProjectDir:
		r.classifyProjectDir(ev, project, base)
	case watchDepDir:
		r.classifyDepDir(ev, project, base)
	case watchScopeDir:
		r.classifyScopeDir(ev, project, target.scope, base)
	}
}

// classifyProjectDir handles events inside a project directory: manifest
// writes and the dependency directory appearing or vanishing.
func (r *Registry) classifyProjectDir(ev fsnotify.Event, project Project, base string) {
	if base == r.manifest && ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		r.emit(Event{Kind: FileChanged, Project: project, Name: base})
		// The dependency directory may exist by now without its watch
		// having attached; manifest writes double as the retry point.
		r.attachDepWatch(project.Path, filepath.Join(project.Path, r.depDir))
		return
	}

	if base != r.depDir {
		return
	}
	switch {
	case ev.Op&fsnotify.Create != 0:
		r.attachDepWatch(project.Path, ev.Name)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		r.detachWatch(ev.Name)
	}
}

// classifyDepDir handles immediate children of a dependency directory.
//
// Hidden entries (npm's ".bin", ".package-lock.json") are ignored. Scope
// directories ("@scope") are not packages themselves; they get their own
// one-level watch so their children surface as "@scope/name".
func (r *Registry) classifyDepDir(ev fsnotify.Event, project Project, base string) {
	if strings.HasPrefix(base, ".") {
		return
	}

	if strings.HasPrefix(base, "@") {
		switch {
		case ev.Op&fsnotify.Create != 0:
			r.attachScopeWatch(project.Path, ev.Name, base)
		case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
			r.detachWatch(ev.Name)
		}
		return
	}

	switch {
	case ev.Op&fsnotify.Create != 0:
		r.emit(Event{Kind: EntryAdded, Project: project, Name: base})
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		r.emit(Event{Kind: EntryRemoved, Project: project, Name: base})
	}
}

// classifyScopeDir handles children of a scope directory, reporting them
// under their full scoped name.
func (r *Registry) classifyScopeDir(ev fsnotify.Event, project Project, scope, base string) {
	if strings.HasPrefix(base, ".") {
		return
	}

	name := scope + "/" + base
	switch {
	case ev.Op&fsnotify.Create != 0:
		r.emit(Event{Kind: EntryAdded, Project: project, Name: name})
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		r.emit(Event{Kind: EntryRemoved, Project: project, Name: name})
	}
}

// emit delivers an event without blocking shutdown.
func (r *Registry) emit(ev Event) {
	select {
	case r.events <- ev:
	case <-r.quit:
	}
}

// attachDepWatch starts the lazy dependency directory watch once the
// directory exists.
func (r *Registry) attachDepWatch(projectPath, depPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	state, ok := r.projects[projectPath]
	if !ok || state.depWatched {
		return
	}

	if err := r.watcher.Add(depPath); err != nil {
		verbose.Debugf("Registry: failed to watch %s: %v", depPath, err)
		return
	}
	state.depWatched = true
	r.watched[depPath] = watchTarget{kind: watchDepDir, project: projectPath}
	verbose.Debugf("Registry: dependency directory now watched for %s", projectPath)
}

// attachScopeWatch starts a one-level watch on a scope directory.
func (r *Registry) attachScopeWatch(projectPath, scopePath, scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	if _, ok := r.watched[scopePath]; ok {
		return
	}

	if err := r.watcher.Add(scopePath); err != nil {
		verbose.Debugf("Registry: failed to watch scope %s: %v", scopePath, err)
		return
	}
	r.watched[scopePath] = watchTarget{kind: watchScopeDir, project: projectPath, scope: scope}
}

// detachWatch drops bookkeeping for a watched directory that vanished.
//
// The underlying watch is released by the operating system when the
// directory is removed; only the classification table needs cleaning.
func (r *Registry) detachWatch(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if target, ok := r.watched[path]; ok {
		delete(r.watched, path)
		if target.kind == watchDepDir {
			if state, exists := r.projects[target.project]; exists {
				state.depWatched = false
			}
		}
	}
}
