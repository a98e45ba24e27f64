package report

import (
	"context"
	"time"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

// TaskSource is anything that can produce tasks for a reporting window.
type TaskSource interface {
	Name() string
	FetchTasks(ctx context.Context, user string, start, end time.Time) ([]analytics.Task, error)
	HealthCheck(ctx context.Context) error
}
