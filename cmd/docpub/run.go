package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docpub/internal/config"
	"git.home.luguber.info/inful/docpub/internal/doxygen"
	pkgerrors "git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/history"
	"git.home.luguber.info/inful/docpub/internal/logfields"
	"git.home.luguber.info/inful/docpub/internal/metrics"
	"git.home.luguber.info/inful/docpub/internal/notify"
	"git.home.luguber.info/inful/docpub/internal/project"
	"git.home.luguber.info/inful/docpub/internal/publish"
	"git.home.luguber.info/inful/docpub/internal/watch"
)

// loadConfig loads and validates the configuration, applying CLI overrides.
func loadConfig(output, versionOverride string) (*config.Config, error) {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return nil, err
	}
	if output != "" {
		cfg.Doxygen.Output = output
	}
	if versionOverride != "" && !project.ValidVersion(versionOverride) {
		return nil, pkgerrors.ValidationFailed("project-version",
			fmt.Sprintf("invalid version label %q, expected x.y.z or x.y.z.n", versionOverride))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBuild(output, versionOverride string) error {
	cfg, err := loadConfig(output, versionOverride)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	generator := doxygen.NewGenerator(cfg).WithVersionOverride(versionOverride)
	report, err := generator.Run(ctx)
	recordRun(cfg, report, nil)
	if err != nil {
		return err
	}
	slog.Info("Build complete",
		logfields.Pages(report.Pages),
		logfields.Path(report.SiteDir),
		logfields.DurationMS(float64(report.Duration().Milliseconds())))
	return nil
}

func runPublish(output, versionOverride string, dryRun bool) error {
	cfg, err := loadConfig(output, versionOverride)
	if err != nil {
		return err
	}
	if err := cfg.ValidateForPublish(); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	generator := doxygen.NewGenerator(cfg).WithVersionOverride(versionOverride)
	report, err := generator.Run(ctx)
	if err != nil {
		recordRun(cfg, report, nil)
		return err
	}

	publisher := publish.NewPublisher(cfg)
	result, err := publisher.Publish(ctx, publish.Request{
		SiteDir: report.SiteDir,
		Project: generator.Metadata().Name,
		Version: generator.Metadata().Version,
		DryRun:  dryRun,
	})
	recordRun(cfg, report, result)
	if err != nil {
		return err
	}

	notifyPublish(cfg, report, result)
	return nil
}

func runInit(configPath string, force bool) error {
	slog.Info("Initializing configuration", logfields.Path(configPath), slog.Bool("force", force))
	return config.Init(configPath, force)
}

func runWatch(output string) error {
	cfg, err := loadConfig(output, "")
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	reg := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)

	watcher, err := watch.NewWatcher(cfg, func(ctx context.Context) error {
		_, err := doxygen.NewGenerator(cfg).WithRecorder(recorder).Run(ctx)
		return err
	})
	if err != nil {
		return pkgerrors.ValidationFailed("watch", err.Error())
	}
	return watcher.WithMetricsHandler(metrics.HTTPHandler(reg)).Run(ctx)
}

func runHistory(limit int, failedOnly bool, prune int) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CategoryRuntime, pkgerrors.SeverityError, "failed to open run history")
	}
	defer func() { _ = store.Close() }()

	if prune >= 0 {
		deleted, err := store.Prune(context.Background(), prune)
		if err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CategoryRuntime, pkgerrors.SeverityError, "failed to prune run history")
		}
		fmt.Printf("Pruned %d run(s), retained the %d newest.\n", deleted, prune)
		return nil
	}

	runs, err := store.List(context.Background(), limit, failedOnly)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CategoryRuntime, pkgerrors.SeverityError, "failed to read run history")
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tPROJECT\tVERSION\tOUTCOME\tPAGES\tDURATION\tPUBLISHED\tCOMMIT")
	for _, r := range runs {
		published := ""
		if r.Published {
			published = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Project, r.Version, r.Outcome, r.Pages,
			(time.Duration(r.DurationMS) * time.Millisecond).String(),
			published, shortCommit(r.CommitHash))
	}
	return tw.Flush()
}

// recordRun best-effort persists the pipeline outcome. History failures are
// warnings, never run failures.
func recordRun(cfg *config.Config, report *doxygen.Report, result *publish.Result) {
	if report == nil || !cfg.History.IsEnabled() {
		return
	}
	run := history.Run{
		RunID:      report.RunID,
		Project:    report.Project,
		Version:    report.Version,
		Outcome:    string(report.Outcome),
		Pages:      report.Pages,
		DurationMS: report.Duration().Milliseconds(),
	}
	if result != nil {
		run.Published = result.Pushed
		run.CommitHash = result.CommitHash
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("Failed to open run history", logfields.Error(err))
		return
	}
	defer func() { _ = store.Close() }()
	if err := store.Record(context.Background(), run); err != nil {
		slog.Warn("Failed to record run history", logfields.Error(err))
	}
}

// notifyPublish best-effort announces a finished publish over NATS.
func notifyPublish(cfg *config.Config, report *doxygen.Report, result *publish.Result) {
	if !cfg.Notify.Enabled {
		return
	}
	notifier, err := notify.NewNotifier(cfg.Notify)
	if err != nil {
		slog.Warn("Failed to connect notifier", logfields.Error(err))
		return
	}
	defer notifier.Close()

	event := notify.Event{
		RunID:      report.RunID,
		Project:    report.Project,
		Version:    report.Version,
		Target:     cfg.Publish.URL,
		CommitHash: result.CommitHash,
		Outcome:    string(report.Outcome),
		Pages:      report.Pages,
	}
	if err := notifier.Publish(event); err != nil {
		slog.Warn("Failed to publish notification", logfields.Error(err))
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func shortCommit(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
