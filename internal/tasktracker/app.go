package tasktracker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
	"github.com/prathameshp107/daily-task-tracker-sub000/internal/config"
	"github.com/prathameshp107/daily-task-tracker-sub000/internal/redmine"
	"github.com/prathameshp107/daily-task-tracker-sub000/internal/report"
)

// Application owns the service lifetime: one client registry, one generator,
// the exporters, and the logger everything below shares.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Registry  *redmine.Registry
	Generator *report.Generator
	Exporter  *report.Exporter
}

func New(cfg *config.Config) *Application {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	registry := redmine.NewRegistry(redmine.Options{
		CacheTTL: cfg.Tracker.CacheTTL,
		PageSize: cfg.Tracker.PageSize,
		Logger:   logger,
	})

	var sources []report.TaskSource
	if cfg.Tracker.BaseURL != "" && cfg.Tracker.APIKey != "" && cfg.Tracker.Project != "" {
		client := registry.Client(cfg.Tracker.BaseURL, cfg.Tracker.APIKey)
		sources = append(sources, redmine.NewSource(client, cfg.Tracker.Project))
		logger.Info("tracker source initialized", "url", cfg.Tracker.BaseURL, "project", cfg.Tracker.Project)
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		Registry:  registry,
		Generator: report.NewGenerator(logger, sources...),
		Exporter:  report.NewExporter(cfg.Output.Directory),
	}
}

// Client returns the shared tracker client for the configured credentials.
func (app *Application) Client() *redmine.Client {
	return app.Registry.Client(app.Config.Tracker.BaseURL, app.Config.Tracker.APIKey)
}

// TransitionRules converts the configured transition checkpoints into the
// client's rule type.
func (app *Application) TransitionRules() []redmine.TransitionRule {
	return []redmine.TransitionRule{
		{Name: "code-review", First: app.Config.Transitions.CodeReview.First, Second: app.Config.Transitions.CodeReview.Second},
		{Name: "ft-review", First: app.Config.Transitions.Review.First, Second: app.Config.Transitions.Review.Second},
	}
}

// JournalOptions builds the fan-out bounds from configuration.
func (app *Application) JournalOptions() redmine.JournalFetchOptions {
	return redmine.JournalFetchOptions{
		BatchSize: app.Config.Tracker.BatchSize,
		Delay:     app.Config.Tracker.BatchDelay,
	}
}

// GenerateReport fetches tasks for the window, applies the task filters and
// writes every configured export format.
func (app *Application) GenerateReport(ctx context.Context, user string, start, end time.Time, filters analytics.Filters) ([]analytics.Task, error) {
	app.Logger.Info("generating report",
		"user", user,
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"),
	)

	tasks, err := app.Generator.Generate(ctx, user, start, end)
	if err != nil {
		app.Logger.Error("failed to generate report", "error", err)
		return nil, err
	}

	tasks = analytics.FilterTasks(tasks, filters)
	if len(tasks) == 0 {
		app.Logger.Warn("no activities found for this period")
		return nil, nil
	}

	if err := app.Export(tasks, user, start, end); err != nil {
		return nil, err
	}

	metrics := analytics.ProductivityMetrics(tasks)
	app.Logger.Info("report generation complete",
		"total", metrics.TotalTasks,
		"completed", metrics.CompletedTasks,
		"score", metrics.ProductivityScore,
	)

	return tasks, nil
}

// Export writes the task collection in every configured format.
func (app *Application) Export(tasks []analytics.Task, user string, start, end time.Time) error {
	if err := os.MkdirAll(app.Config.Output.Directory, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stats := app.Generator.Statistics(tasks)
	timestamp := time.Now().Format("20060102")
	days := int(end.Sub(start).Hours() / 24)

	for _, format := range app.Config.Output.Format {
		switch format {
		case "json":
			filename := fmt.Sprintf("report_%s_%s.json", user, timestamp)
			if err := app.Exporter.ExportJSON(tasks, filename); err != nil {
				app.Logger.Error("failed to export JSON", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "json", "file", filename)
			}

		case "html":
			filename := fmt.Sprintf("report_%s_%s.html", user, timestamp)
			if err := app.Exporter.ExportHTML(tasks, stats, filename, app.Config.Author, days); err != nil {
				app.Logger.Error("failed to export HTML", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "html", "file", filename)
			}

		case "csv":
			exporter := report.NewCSVExporter(app.Config.Output.Directory)
			if err := exporter.Export(tasks, start, end); err != nil {
				app.Logger.Error("failed to export CSV", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "csv")
			}

		case "excel":
			exporter := report.NewExcelExporter(app.Config.Output.Directory)
			if err := exporter.Export(tasks, start, end); err != nil {
				app.Logger.Error("failed to export Excel", "error", err)
			} else {
				app.Logger.Info("report exported", "format", "excel")
			}
		}
	}

	return nil
}
