package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

type Generator struct {
	Sources []TaskSource
	Logger  *slog.Logger
}

func NewGenerator(logger *slog.Logger, sources ...TaskSource) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{Sources: sources, Logger: logger}
}

// Generate fetches tasks from all sources and merges them, newest first.
// A source that fails its health check or its fetch is skipped; the whole
// run fails only when every source failed and nothing was collected.
func (g *Generator) Generate(ctx context.Context, user string, start, end time.Time) ([]analytics.Task, error) {
	var all []analytics.Task
	errors := make(map[string]error)

	for _, src := range g.Sources {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := src.HealthCheck(ctx); err != nil {
			errors[src.Name()] = fmt.Errorf("health check failed: %w", err)
			g.Logger.Warn("source unavailable", "source", src.Name(), "error", err)
			continue
		}

		tasks, err := src.FetchTasks(ctx, user, start, end)
		if err != nil {
			errors[src.Name()] = err
			g.Logger.Error("fetch failed", "source", src.Name(), "error", err)
			continue
		}

		g.Logger.Info("tasks fetched", "source", src.Name(), "count", len(tasks))
		all = append(all, tasks...)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})

	if len(all) == 0 && len(errors) > 0 {
		return nil, fmt.Errorf("failed to fetch from all sources: %v", errors)
	}

	return all, nil
}

// Statistics generates summary stats for the export headers.
func (g *Generator) Statistics(tasks []analytics.Task) map[string]any {
	stats := make(map[string]any)

	byProject := make(map[string]int)
	byStatus := make(map[string]int)
	byType := make(map[string]int)

	completed := 0
	for _, task := range tasks {
		byProject[task.Project]++
		byStatus[string(task.Status)]++
		byType[task.Type]++
		if task.Completed {
			completed++
		}
	}

	stats["total"] = len(tasks)
	stats["completed"] = completed
	stats["by_project"] = byProject
	stats["by_status"] = byStatus
	stats["by_type"] = byType
	return stats
}
