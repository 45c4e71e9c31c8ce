// Package monitor wires discovery, the watch registry, chain resolution, and
// installation tracking into the long-running watch session.
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/pkgmon/pkgmon/pkg/chain"
	"github.com/pkgmon/pkgmon/pkg/cmdexec"
	"github.com/pkgmon/pkgmon/pkg/config"
	"github.com/pkgmon/pkgmon/pkg/constants"
	"github.com/pkgmon/pkgmon/pkg/discovery"
	"github.com/pkgmon/pkgmon/pkg/registry"
	"github.com/pkgmon/pkgmon/pkg/tracker"
	"github.com/pkgmon/pkgmon/pkg/verbose"
	"github.com/pkgmon/pkgmon/pkg/warnings"
)

// batchPause spaces out watch registration batches so a large discovery
// result does not open hundreds of watch handles at once.
const batchPause = 50 * time.Millisecond

// Controller owns one watch session.
//
// A session consists of the shared watch registry, the chain resolver, the
// installation tracker, and the background jobs that keep the project set
// current. All event consumption happens on the goroutine running Run.
type Controller struct {
	cfg      *config.Config
	out      io.Writer
	resolver *chain.Resolver
	registry *registry.Registry
	tracker  *tracker.Tracker
}

// NewController builds a controller from configuration.
//
// Parameters:
//   - cfg: Validated configuration
//   - out: Destination for status output (defaults to stdout)
//
// Returns:
//   - *Controller: A controller ready to Run; callers need not close it,
//     Run tears the session down on return
//   - error: Watch registry creation failure
func NewController(cfg *config.Config, out io.Writer) (*Controller, error) {
	if out == nil {
		out = os.Stdout
	}

	reg, err := registry.NewRegistry(cfg.Manager.Manifest, cfg.Manager.DependencyDir)
	if err != nil {
		return nil, err
	}

	// Config reports a disabled abandonment timeout as zero; the tracker
	// takes zero to mean "use the default" and negative to mean disabled.
	abandonAfter := cfg.GetAbandonAfter()
	if abandonAfter == 0 {
		abandonAfter = -1
	}

	return &Controller{
		cfg:      cfg,
		out:      out,
		resolver: chain.NewResolver(cfg.Manager.Manifest, cfg.Manager.LockFile),
		registry: reg,
		tracker: tracker.NewTracker(tracker.Options{
			Manifest:     cfg.Manager.Manifest,
			DepDir:       cfg.Manager.DependencyDir,
			Tick:         cfg.GetTick(),
			PollDelay:    cfg.GetPollDelay(),
			PollInterval: cfg.GetPollInterval(),
			Linger:       cfg.GetLinger(),
			AbandonAfter: abandonAfter,
			Estimates: tracker.EstimateOptions{
				Large:           time.Duration(cfg.Tracker.Estimates.LargeMs) * time.Millisecond,
				Medium:          time.Duration(cfg.Tracker.Estimates.MediumMs) * time.Millisecond,
				Default:         time.Duration(cfg.Tracker.Estimates.DefaultMs) * time.Millisecond,
				LargeFragments:  cfg.Tracker.Estimates.LargeFragments,
				MediumFragments: cfg.Tracker.Estimates.MediumFragments,
			},
			Out: out,
		}),
	}, nil
}

// RunLocal watches only the working directory project.
//
// It performs the following operations:
//   - Registers the working directory with the watch registry
//   - Schedules the periodic resolver cache refresh
//   - Consumes classified events until the context is cancelled
//   - Tears the session down on return
//
// Parameters:
//   - ctx: Session context; cancellation (e.g., an interrupt) ends the
//     session cleanly
//
// Returns:
//   - error: Registration failure; a cancelled context is not an error
func (c *Controller) RunLocal(ctx context.Context) error {
	if err := c.registry.Register(c.cfg.WorkingDir); err != nil {
		c.teardown()
		return fmt.Errorf("failed to watch %s: %w", c.cfg.WorkingDir, err)
	}
	fmt.Fprintf(c.out, "%s Watching %s\n", constants.IconProject, c.cfg.WorkingDir)

	scheduler, err := c.startJobs(ctx, false)
	if err != nil {
		c.teardown()
		return err
	}

	return c.consume(ctx, scheduler)
}

// RunUniversal watches all discoverable projects plus the global store.
//
// It performs the following operations:
//   - In quick mode, registers the working directory immediately and defers
//     the full discovery scan by the configured delay, so monitoring of the
//     current project starts without waiting on a disk scan
//   - Otherwise runs discovery up front and registers the results in batches
//   - Registers the package manager's global store when it can be located
//   - Schedules periodic rediscovery and cache refresh jobs
//   - Consumes classified events until the context is cancelled
//
// Parameters:
//   - ctx: Session context
//   - quick: Whether to defer the initial discovery scan
//
// Returns:
//   - error: Scheduler setup failure; a cancelled context is not an error
func (c *Controller) RunUniversal(ctx context.Context, quick bool) error {
	if err := c.registry.Register(c.cfg.WorkingDir); err != nil {
		verbose.WatchDegraded(filepath.Base(c.cfg.WorkingDir), err)
	} else if quick {
		fmt.Fprintf(c.out, "%s Watching %s (full scan in %s)\n",
			constants.IconProject, c.cfg.WorkingDir, c.cfg.GetQuickDelay())
	} else {
		fmt.Fprintf(c.out, "%s Watching %s\n", constants.IconProject, c.cfg.WorkingDir)
	}

	if quick {
		go func() {
			select {
			case <-time.After(c.cfg.GetQuickDelay()):
				c.discoverAndRegister(ctx)
			case <-ctx.Done():
			}
		}()
	} else {
		c.discoverAndRegister(ctx)
	}

	if store := c.globalStore(ctx); store != "" {
		if err := c.registry.RegisterGlobal(store); err != nil {
			verbose.WatchDegraded(constants.GlobalProject, err)
		} else {
			fmt.Fprintf(c.out, "%s Watching global store %s\n", constants.IconGlobal, store)
		}
	}

	scheduler, err := c.startJobs(ctx, true)
	if err != nil {
		c.teardown()
		return err
	}

	return c.consume(ctx, scheduler)
}

// consume drains classified events until the context is cancelled, then
// tears the session down.
func (c *Controller) consume(ctx context.Context, scheduler gocron.Scheduler) error {
	defer func() {
		if scheduler != nil {
			if err := scheduler.Shutdown(); err != nil {
				verbose.Debugf("Monitor: scheduler shutdown: %v", err)
			}
		}
		c.teardown()
	}()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintf(c.out, "\n%s Monitoring stopped\n", constants.IconSuccess)
			return nil
		case ev, ok := <-c.registry.Events():
			if !ok {
				return nil
			}
			c.handle(ev)
		}
	}
}

// handle dispatches one classified event.
func (c *Controller) handle(ev registry.Event) {
	switch ev.Kind {
	case registry.EntryAdded:
		info := c.resolver.Resolve(ev.Name, ev.Project.Path)
		c.tracker.Track(ev.Project, ev.Name, info)
	case registry.EntryRemoved:
		c.tracker.Untrack(ev.Project.Path, ev.Name)
	case registry.FileChanged:
		c.resolver.Invalidate(ev.Project.Path)
		if names := c.resolver.TopLevel(ev.Project.Path); len(names) > 0 {
			verbose.Debugf("Monitor: %s declares %d top-level dependencies: %s",
				ev.Project.Name, len(names), strings.Join(names, ", "))
		}
	case registry.WatchError:
		warnings.WarnOnce("watch-error", "%s watcher reported: %v", constants.IconWarning, ev.Err)
	}
}

// discoverAndRegister runs one discovery scan and registers the results.
//
// Registration happens in batches with a short pause between them; projects
// already registered are skipped by the registry's idempotence.
func (c *Controller) discoverAndRegister(ctx context.Context) {
	projects := discovery.Discover(ctx, discovery.Options{
		Roots:        c.cfg.Discovery.Roots,
		Manifest:     c.cfg.Manager.Manifest,
		MaxDepth:     c.cfg.Discovery.MaxDepth,
		Exclude:      c.cfg.Discovery.Exclude,
		ProbeTimeout: c.cfg.GetProbeTimeout(),
	})

	registered := 0
	for i, batch := range discovery.Batches(projects, c.cfg.Discovery.BatchSize) {
		if ctx.Err() != nil {
			return
		}
		if i > 0 {
			time.Sleep(batchPause)
		}
		for _, path := range batch {
			if c.registry.Registered(path) {
				continue
			}
			if err := c.registry.Register(path); err != nil {
				verbose.WatchDegraded(filepath.Base(path), err)
				continue
			}
			registered++
		}
	}

	if registered > 0 {
		noun := "projects"
		if registered == 1 {
			noun = "project"
		}
		fmt.Fprintf(c.out, "%s Watching %d %s\n", constants.IconProject, registered, noun)
	}
}

// startJobs schedules the background maintenance jobs.
//
// The rediscovery job (universal sessions only) keeps the project set current
// as projects are created or deleted; the refresh job drops cached manifest
// data so long sessions do not serve stale top-level dependency sets.
func (c *Controller) startJobs(ctx context.Context, rediscover bool) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	if rediscover {
		_, err = scheduler.NewJob(
			gocron.DurationJob(c.cfg.GetDiscoveryInterval()),
			gocron.NewTask(func() { c.discoverAndRegister(ctx) }),
			gocron.WithName("rediscovery"),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to schedule rediscovery: %w", err)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(c.cfg.GetRederiveInterval()),
		gocron.NewTask(c.refreshResolver),
		gocron.WithName("resolver-refresh"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule resolver refresh: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

// refreshResolver re-derives the top-level dependency set of every watched
// project so long sessions track manifest edits between change events.
func (c *Controller) refreshResolver() {
	for _, project := range c.registry.Projects() {
		if project.Name == constants.GlobalProject {
			continue
		}
		c.resolver.Invalidate(project.Path)
		c.resolver.TopLevel(project.Path)
	}
}

// globalStore locates the package manager's global install directory.
//
// The configured override wins; otherwise the package manager is asked
// directly ("npm root -g"). Failure disables global monitoring and nothing
// else.
//
// Parameters:
//   - ctx: Context bounding the lookup command
//
// Returns:
//   - string: The global store directory, empty when it cannot be located
func (c *Controller) globalStore(ctx context.Context) string {
	if c.cfg.Manager.GlobalStore != "" {
		return c.cfg.Manager.GlobalStore
	}

	out, err := cmdexec.Execute(ctx, c.cfg.Manager.Name+" root -g", "", 10, nil)
	if err != nil {
		verbose.Debugf("Monitor: global store lookup failed: %v", err)
		return ""
	}

	store := strings.TrimSpace(string(out))
	if store == "" {
		return ""
	}
	if info, err := os.Stat(store); err != nil || !info.IsDir() {
		verbose.Debugf("Monitor: global store %q not present", store)
		return ""
	}
	return store
}

// teardown stops tracking and closes the watch registry.
func (c *Controller) teardown() {
	c.tracker.StopAll()
	if err := c.registry.Close(); err != nil {
		verbose.Debugf("Monitor: registry close: %v", err)
	}
}
