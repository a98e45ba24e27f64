package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

func (e *CSVExporter) Export(tasks []analytics.Task, start, end time.Time) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	if err := e.exportTaskList(tasks, timestamp); err != nil {
		return fmt.Errorf("failed to export task list: %w", err)
	}

	if err := e.exportAnalytics(tasks, timestamp, start, end); err != nil {
		return fmt.Errorf("failed to export analytics: %w", err)
	}

	return nil
}

func (e *CSVExporter) exportTaskList(tasks []analytics.Task, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("tasks_%s_task_list.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"#",
		"Task",
		"Type",
		"Project",
		"Status",
		"Month",
		"Total Hours",
		"Approved Hours",
		"Date",
		"Note",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, task := range tasks {
		row := []string{
			fmt.Sprintf("%d", i+1),
			task.Description,
			task.Type,
			task.Project,
			string(task.Status),
			task.Month,
			formatHours(task.TotalHours),
			formatHours(task.ApprovedHours),
			formatTaskDate(task.Date),
			task.Note,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (e *CSVExporter) exportAnalytics(tasks []analytics.Task, timestamp string, start, end time.Time) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("tasks_%s_dashboard.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Date From:", formatTaskDate(start)}); err != nil {
		return err
	}
	if err := writer.Write([]string{"Date to:", formatTaskDate(end)}); err != nil {
		return err
	}
	if err := writer.Write([]string{""}); err != nil {
		return err
	}

	metrics := analytics.ProductivityMetrics(tasks)
	metricRows := [][]string{
		{"Total Tasks", fmt.Sprintf("%d", metrics.TotalTasks)},
		{"Completed Tasks", fmt.Sprintf("%d", metrics.CompletedTasks)},
		{"Completion Rate (%)", fmt.Sprintf("%d", metrics.CompletionRate)},
		{"Avg Completion Time (h)", formatHours(metrics.AvgCompletionTime)},
		{"Task Velocity (per week)", formatHours(metrics.TaskVelocity)},
		{"Productivity Score", fmt.Sprintf("%d", metrics.ProductivityScore)},
		{"Estimation Accuracy (%)", fmt.Sprintf("%d", metrics.EstimationAccuracy)},
	}
	for _, row := range metricRows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{""}); err != nil {
		return err
	}

	if err := writer.Write([]string{"Project", "Type", "Estimated Hours", "Actual Hours", "Accuracy (%)", "Variance"}); err != nil {
		return err
	}
	for _, row := range analytics.TimeAnalytics(tasks) {
		record := []string{
			row.Project,
			row.Type,
			formatHours(row.EstimatedHours),
			formatHours(row.ActualHours),
			fmt.Sprintf("%d", row.Accuracy),
			formatHours(row.Variance),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	if err := writer.Write([]string{""}); err != nil {
		return err
	}

	if err := writer.Write([]string{"Project", "Total", "Completed", "In Progress", "Todo", "Completion (%)", "Avg Completion (h)", "Overdue"}); err != nil {
		return err
	}
	for _, row := range analytics.ProjectProgress(tasks) {
		record := []string{
			row.Project,
			fmt.Sprintf("%d", row.TotalTasks),
			fmt.Sprintf("%d", row.CompletedTasks),
			fmt.Sprintf("%d", row.InProgressTasks),
			fmt.Sprintf("%d", row.TodoTasks),
			fmt.Sprintf("%d", row.CompletionPercentage),
			formatHours(row.AvgCompletionTime),
			fmt.Sprintf("%d", row.OverdueTasks),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatTaskDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/06")
}

func formatHours(v float64) string {
	return fmt.Sprintf("%g", v)
}
