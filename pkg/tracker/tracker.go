// Package tracker drives the lifecycle of observed package installations.
//
// Each tracked installation moves through Detected, Estimating, Completing,
// and Done. Progress is estimated from elapsed time against a per-package
// heuristic and capped below completion; only an on-disk completion check
// (the installed package's manifest appearing) reaches 100%.
package tracker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkgmon/pkgmon/pkg/chain"
	"github.com/pkgmon/pkgmon/pkg/constants"
	"github.com/pkgmon/pkgmon/pkg/output"
	"github.com/pkgmon/pkgmon/pkg/registry"
	"github.com/pkgmon/pkgmon/pkg/verbose"
	"github.com/pkgmon/pkgmon/pkg/warnings"
)

// progressCeiling is the highest percentage the time-based estimate may
// report; 100% is reserved for a confirmed on-disk completion.
const progressCeiling = 95

// Timing defaults applied when Options leaves the corresponding field unset.
const (
	defaultTick         = 200 * time.Millisecond
	defaultPollDelay    = 500 * time.Millisecond
	defaultPollInterval = 300 * time.Millisecond
	defaultLinger       = time.Second
	defaultAbandonAfter = 5 * time.Minute
)

// Injection seams for tests.
var (
	statFunc = os.Stat
	nowFunc  = time.Now
)

// Options configures a Tracker.
//
// Fields:
//   - Manifest: Manifest file name whose appearance confirms completion
//   - DepDir: Dependency directory name under a project
//   - Tick: Interval between progress re-estimates
//   - PollDelay: Delay before the first completion check
//   - PollInterval: Interval between subsequent completion checks
//   - Linger: How long a completed record stays registered, absorbing
//     trailing filesystem events for the same entry
//   - AbandonAfter: Give-up deadline for the completion poll; zero uses the
//     default, negative disables abandonment
//   - Estimates: Heuristic configuration
//   - Out: Destination for status lines and progress (defaults to stdout)
type Options struct {
	Manifest     string
	DepDir       string
	Tick         time.Duration
	PollDelay    time.Duration
	PollInterval time.Duration
	Linger       time.Duration
	AbandonAfter time.Duration
	Estimates    EstimateOptions
	Out          io.Writer
}

// installation is one tracked (project, package) pair.
type installation struct {
	project  registry.Project
	pkg      string
	info     chain.Info
	status   string
	estimate time.Duration
	started  time.Time
	progress *output.Progress
	stop     chan struct{}
}

// Tracker owns all active installation records.
//
// Track is idempotent per (project path, package name): repeated filesystem
// events for an entry already being tracked are absorbed without resetting
// its progress.
type Tracker struct {
	opts Options
	est  *Estimator

	mu     sync.Mutex
	active map[string]*installation
	wg     sync.WaitGroup
}

// NewTracker creates a tracker, filling unset options with defaults.
//
// Parameters:
//   - opts: Tracker configuration
//
// Returns:
//   - *Tracker: A ready tracker
func NewTracker(opts Options) *Tracker {
	if opts.Manifest == "" {
		opts.Manifest = "package.json"
	}
	if opts.DepDir == "" {
		opts.DepDir = "node_modules"
	}
	if opts.Tick <= 0 {
		opts.Tick = defaultTick
	}
	if opts.PollDelay <= 0 {
		opts.PollDelay = defaultPollDelay
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Linger <= 0 {
		opts.Linger = defaultLinger
	}
	if opts.AbandonAfter == 0 {
		opts.AbandonAfter = defaultAbandonAfter
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	return &Tracker{
		opts:   opts,
		est:    NewEstimator(opts.Estimates),
		active: make(map[string]*installation),
	}
}

// trackKey builds the composite identity of an installation.
func trackKey(projectPath, packageName string) string {
	return projectPath + "|" + packageName
}

// Track begins tracking a detected installation.
//
// It performs the following operations:
//   - Ignores the call when the (project, package) pair is already tracked
//   - Prints the detection line with the dependency chain classification
//   - Estimates the duration from the package name and starts the progress
//     loop in its own goroutine
//
// Parameters:
//   - project: The project the entry appeared in
//   - packageName: The installing package
//   - info: Dependency chain classification resolved at detection time
func (t *Tracker) Track(project registry.Project, packageName string, info chain.Info) {
	key := trackKey(project.Path, packageName)

	t.mu.Lock()
	if _, exists := t.active[key]; exists {
		t.mu.Unlock()
		verbose.Tracef("Tracker: %s already tracked", key)
		return
	}

	inst := &installation{
		project:  project,
		pkg:      packageName,
		info:     info,
		status:   constants.StatusDetected,
		estimate: t.est.Estimate(packageName),
		started:  nowFunc(),
		stop:     make(chan struct{}),
	}
	inst.progress = output.NewProgress(t.opts.Out, 100, fmt.Sprintf("%s %s", t.icon(project), packageName))
	t.active[key] = inst
	t.mu.Unlock()

	fmt.Fprintf(t.opts.Out, "%s %s %s %s %s\n",
		t.icon(project), packageName, constants.IconProject, project.Name, describeChain(info))

	t.mu.Lock()
	inst.status = constants.StatusEstimating
	t.mu.Unlock()

	t.wg.Add(1)
	go t.run(key, inst)
}

// Untrack stops tracking an installation whose entry vanished mid-install.
//
// Parameters:
//   - projectPath: The project the entry belonged to
//   - packageName: The package whose entry vanished
func (t *Tracker) Untrack(projectPath, packageName string) {
	key := trackKey(projectPath, packageName)

	t.mu.Lock()
	inst, ok := t.active[key]
	if ok && inst.status != constants.StatusDone {
		delete(t.active, key)
	} else {
		ok = false
	}
	t.mu.Unlock()

	if ok {
		close(inst.stop)
		verbose.Debugf("Tracker: %s removed before completion", key)
	}
}

// Status returns the current status of a tracked installation.
//
// Parameters:
//   - projectPath: The project path
//   - packageName: The package name
//
// Returns:
//   - string: The status value
//   - bool: true when the pair is currently tracked
func (t *Tracker) Status(projectPath, packageName string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if inst, ok := t.active[trackKey(projectPath, packageName)]; ok {
		return inst.status, true
	}
	return "", false
}

// ActiveCount returns the number of currently tracked installations.
//
// Returns:
//   - int: Count of active records, completed-but-lingering ones included
func (t *Tracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

// StopAll cancels every active installation and waits for their goroutines.
func (t *Tracker) StopAll() {
	t.mu.Lock()
	for key, inst := range t.active {
		close(inst.stop)
		delete(t.active, key)
	}
	t.mu.Unlock()
	t.wg.Wait()
}

// run drives one installation from Estimating to its terminal state.
//
// It performs the following operations:
//   - Re-estimates progress every tick, capped at the ceiling, with the
//     predicted remaining time as detail
//   - Checks for the completed package manifest after the poll delay and
//     then at the poll interval; the check is independent of the tick so a
//     fast install finishes before its estimate runs out
//   - On completion, reports 100%, prints the success line, and lingers
//     before retiring the record
//   - Gives up after the abandonment deadline and retires the record with
//     a warning
func (t *Tracker) run(key string, inst *installation) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.opts.Tick)
	defer ticker.Stop()

	poll := time.NewTimer(t.opts.PollDelay)
	defer poll.Stop()

	var abandon <-chan time.Time
	if t.opts.AbandonAfter > 0 {
		deadline := time.NewTimer(t.opts.AbandonAfter)
		defer deadline.Stop()
		abandon = deadline.C
	}

	markerPath := filepath.Join(t.depDirFor(inst.project), inst.pkg, t.opts.Manifest)

	for {
		select {
		case <-inst.stop:
			inst.progress.Clear()
			return

		case <-ticker.C:
			elapsed := nowFunc().Sub(inst.started)
			percent := ProgressPercent(elapsed, inst.estimate)
			remaining := inst.estimate - elapsed
			detail := ""
			if remaining > 0 {
				detail = fmt.Sprintf("~%.1fs left", remaining.Seconds())
			}
			inst.progress.Update(percent, detail)

		case <-poll.C:
			if _, err := statFunc(markerPath); err == nil {
				t.complete(key, inst)
				return
			}
			verbose.Tracef("Tracker: %s not complete yet", key)
			t.setStatus(inst, constants.StatusCompleting)
			poll.Reset(t.opts.PollInterval)

		case <-abandon:
			t.abandon(key, inst)
			return
		}
	}
}

// complete finishes an installation that was confirmed on disk.
func (t *Tracker) complete(key string, inst *installation) {
	t.setStatus(inst, constants.StatusDone)

	elapsed := nowFunc().Sub(inst.started)
	inst.progress.Update(100, "")
	inst.progress.Done()
	fmt.Fprintf(t.opts.Out, "%s %s installed in %s (%.1fs)\n",
		constants.IconSuccess, inst.pkg, inst.project.Name, elapsed.Seconds())

	// The record lingers so trailing events for the same entry are absorbed.
	select {
	case <-time.After(t.opts.Linger):
	case <-inst.stop:
	}

	t.mu.Lock()
	delete(t.active, key)
	t.mu.Unlock()
}

// abandon retires an installation whose completion was never observed.
func (t *Tracker) abandon(key string, inst *installation) {
	t.setStatus(inst, constants.StatusAbandoned)
	inst.progress.Clear()
	warnings.Warnf("%s %s in %s: completion not observed after %s, giving up\n",
		constants.IconBlocked, inst.pkg, inst.project.Name, t.opts.AbandonAfter)

	t.mu.Lock()
	delete(t.active, key)
	t.mu.Unlock()
}

// setStatus updates an installation's status under the tracker lock.
func (t *Tracker) setStatus(inst *installation, status string) {
	t.mu.Lock()
	inst.status = status
	t.mu.Unlock()
}

// depDirFor resolves the directory that installed packages land in.
//
// The global pseudo-project's path is the store itself; regular projects
// install under their dependency directory.
func (t *Tracker) depDirFor(project registry.Project) string {
	if project.Name == constants.GlobalProject {
		return project.Path
	}
	return filepath.Join(project.Path, t.opts.DepDir)
}

// icon selects the display icon for a project.
func (t *Tracker) icon(project registry.Project) string {
	if project.Name == constants.GlobalProject {
		return constants.IconGlobal
	}
	return constants.IconPackage
}

// describeChain renders the chain classification for the detection line.
func describeChain(info chain.Info) string {
	switch info.Kind {
	case chain.KindTransitive:
		if info.Parent != "" {
			return fmt.Sprintf("[%s via %s]", constants.ChainTransitive, info.Parent)
		}
		return fmt.Sprintf("[%s]", constants.ChainTransitive)
	case chain.KindUserRequested:
		return fmt.Sprintf("[%s]", constants.ChainUserRequested)
	default:
		if info.Reason != "" {
			return fmt.Sprintf("[%s: %s]", constants.ChainUnknown, info.Reason)
		}
		return fmt.Sprintf("[%s]", constants.ChainUnknown)
	}
}

// ProgressPercent converts elapsed time into an estimated percentage.
//
// The result never exceeds the ceiling; a confirmed completion is the only
// path to 100%.
//
// Parameters:
//   - elapsed: Time since the installation was detected
//   - estimate: The predicted total duration
//
// Returns:
//   - int: Estimated progress in [0, 95]
func ProgressPercent(elapsed, estimate time.Duration) int {
	if estimate <= 0 {
		return progressCeiling
	}
	percent := int(elapsed * 100 / estimate)
	if percent > progressCeiling {
		return progressCeiling
	}
	if percent < 0 {
		return 0
	}
	return percent
}
