// Package engine drives the renderer loop: a periodic aggregation cycle
// over the four session roots, cooperative-cancellation aware, with an
// optional fsnotify watch that invalidates the parse cache as session
// files change between ticks.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vibecoding/vct/internal/aggregate"
	"github.com/vibecoding/vct/internal/cache"
	"github.com/vibecoding/vct/internal/core"
	"github.com/vibecoding/vct/internal/pricing"
)

// DefaultInterval is the renderer's default aggregation cadence.
const DefaultInterval = 1 * time.Second

// Snapshot is one aggregation cycle's complete output, handed to the
// renderer as plain data.
type Snapshot struct {
	GeneratedAt time.Time
	Usage       map[string][]aggregate.UsageRow
	Activity    map[string][]aggregate.ActivityRow
	Averages    []aggregate.DailyAverage
}

// Engine owns the process-wide Parse Cache and Model Matcher and runs
// the periodic refresh cycle.
type Engine struct {
	Interval time.Duration
	Cache    *cache.ParseCache
	Matcher  *pricing.Matcher
	Logger   *slog.Logger

	watcher *fsnotify.Watcher
}

// New builds an Engine with a fresh parse cache bound to a loaded
// pricing catalog.
func New(logger *slog.Logger) (*Engine, error) {
	catalog, err := pricing.Load()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Interval: DefaultInterval,
		Cache:    cache.New(cache.DefaultCapacity),
		Matcher:  pricing.NewMatcher(catalog),
		Logger:   logger,
	}, nil
}

// RefreshAll runs one full aggregation cycle: scan every session root
// through the parse cache, then build the usage, activity and daily
// average views from the results.
func (e *Engine) RefreshAll() (Snapshot, error) {
	files, err := aggregate.ScanAll(e.Cache)
	if err != nil {
		return Snapshot{}, err
	}

	usage := aggregate.Usage(files, e.Matcher)
	activity := aggregate.Analysis(files)
	averages := aggregate.DailyAverages(activity)

	return Snapshot{
		GeneratedAt: time.Now(),
		Usage:       usage,
		Activity:    activity,
		Averages:    averages,
	}, nil
}

// Run drives the ticker-based refresh cycle, sending each cycle's
// snapshot to out, until ctx is cancelled. An in-flight cycle always
// runs to completion; cancellation takes effect between cycles.
func (e *Engine) Run(ctx context.Context, out chan<- Snapshot) error {
	interval := e.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	e.startWatch()
	defer e.stopWatch()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap, err := e.RefreshAll()
		if err != nil {
			e.Logger.Warn("refresh cycle failed", "error", err)
		} else {
			select {
			case out <- snap:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// startWatch arranges for write and remove events in the four session
// root directories to invalidate the parse cache early, so the next tick
// doesn't serve a stale entry purely due to clock granularity. Only the
// root directories themselves are watched; files in their subdirectories
// raise no events.
// Watch failures are non-fatal: the cache's own stat-based check in
// GetOrParse is still correct without it, just on the next tick.
func (e *Engine) startWatch() {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		e.Logger.Debug("fsnotify unavailable, falling back to stat-only invalidation", "error", err)
		return
	}

	roots, err := core.ResolveSessionRoots()
	if err != nil {
		_ = w.Close()
		return
	}
	for _, root := range roots {
		_ = w.Add(root.Dir) // missing directories are tolerated; fsnotify simply won't fire for them
	}

	e.watcher = w
	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) {
					e.Cache.Invalidate(ev.Name)
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (e *Engine) stopWatch() {
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
}
