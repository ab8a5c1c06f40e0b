// Package watch rebuilds the documentation on source changes and serves the
// generated site for local preview. It never publishes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/logfields"
)

// BuildFunc runs one generation pass.
type BuildFunc func(ctx context.Context) error

// Watcher drives rebuild-on-change plus an optional periodic rebuild.
type Watcher struct {
	cfg      *config.Config
	build    BuildFunc
	metrics  http.Handler // optional /metrics handler
	status   *buildStatus
	debounce time.Duration
	interval time.Duration
}

// NewWatcher validates the watch configuration and returns a watcher.
func NewWatcher(cfg *config.Config, build BuildFunc) (*Watcher, error) {
	debounce, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return nil, fmt.Errorf("invalid watch debounce %q: %w", cfg.Watch.Debounce, err)
	}
	w := &Watcher{
		cfg:      cfg,
		build:    build,
		status:   &buildStatus{},
		debounce: debounce,
	}
	if cfg.Watch.Interval != "" {
		interval, err := time.ParseDuration(cfg.Watch.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid watch interval %q: %w", cfg.Watch.Interval, err)
		}
		w.interval = interval
	}
	return w, nil
}

// WithMetricsHandler attaches an http.Handler served at /metrics.
func (w *Watcher) WithMetricsHandler(h http.Handler) *Watcher {
	w.metrics = h
	return w
}

// Run performs an initial build, then blocks serving the site and rebuilding
// on change until the context is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	absSource, err := filepath.Abs(w.cfg.Project.Source)
	if err != nil {
		return fmt.Errorf("resolve source dir: %w", err)
	}

	if err := w.build(ctx); err != nil {
		slog.Error("Initial build failed", logfields.Error(err))
		w.status.setError(err)
	} else {
		w.status.setSuccess()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := w.addDirsRecursive(watcher, absSource); err != nil {
		return err
	}

	rebuildReq, trigger := w.newDebouncer(ctx)
	w.startRebuildWorker(ctx, rebuildReq)

	if w.interval > 0 {
		scheduler, err := w.startScheduler(trigger)
		if err != nil {
			return err
		}
		defer func() { _ = scheduler.Shutdown() }()
	}

	server := w.startServer()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Watching for changes",
		logfields.Path(absSource),
		slog.String("listen", w.cfg.Watch.Listen),
		slog.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watch mode")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(watcher, ev, trigger)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// startScheduler registers the periodic rebuild job.
func (w *Watcher) startScheduler(trigger func()) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			slog.Debug("Periodic rebuild triggered", slog.Duration("interval", w.interval))
			trigger()
		}),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule periodic rebuild: %w", err)
	}
	scheduler.Start()
	return scheduler, nil
}

// newDebouncer returns the rebuild request channel and a trigger that
// coalesces rapid events into one request after the debounce window.
func (w *Watcher) newDebouncer(ctx context.Context) (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			if ctx.Err() != nil {
				return
			}
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// startRebuildWorker processes rebuild requests sequentially. Requests that
// arrive during a build coalesce into a single follow-up build.
func (w *Watcher) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				w.rebuild(ctx)

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (w *Watcher) rebuild(ctx context.Context) {
	slog.Info("Change detected; rebuilding documentation")
	if err := w.build(ctx); err != nil {
		slog.Warn("Rebuild failed", logfields.Error(err))
		w.status.setError(err)
		return
	}
	w.status.setSuccess()
}

// handleEvent filters a filesystem event and triggers a rebuild when relevant.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.shouldIgnore(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		// The root itself is always watched even when its own name would
		// match an ignore rule (a checkout under a dot-directory, say).
		if path != root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnore filters the output directory, VCS metadata, editor droppings
// and configured ignore globs.
func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	if base == ".git" || strings.HasPrefix(base, ".") && base != "." {
		return true
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") {
		return true
	}
	if base == "Thumbs.db" {
		return true
	}

	if absOut, err := filepath.Abs(w.cfg.Doxygen.Output); err == nil {
		if absPath, err := filepath.Abs(path); err == nil {
			if absPath == absOut || strings.HasPrefix(absPath, absOut+string(filepath.Separator)) {
				return true
			}
		}
	}

	for _, pattern := range w.cfg.Watch.Ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		if rel, err := filepath.Rel(w.cfg.Project.Source, path); err == nil {
			if ok, _ := filepath.Match(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}
