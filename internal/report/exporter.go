package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

//go:embed "templates"
var templateFS embed.FS

type Exporter struct {
	OutputDir string
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{OutputDir: outputDir}
}

func (e *Exporter) ExportJSON(tasks []analytics.Task, filename string) error {
	data, err := json.MarshalIndent(tasks, "", "\t")
	if err != nil {
		return err
	}

	return os.WriteFile(fmt.Sprintf("%s/%s", e.OutputDir, filename), data, 0644)
}

// ExportHTML renders the dashboard page: headline metrics, the completion
// series, time analytics and per-project progress.
func (e *Exporter) ExportHTML(tasks []analytics.Task, stats map[string]any, filename, author string, rangeDays int) error {
	funcMap := template.FuncMap{
		"title": cases.Title(language.English).String,
		"sub":   func(a, b int) int { return a - b },
	}
	tmpl, err := template.New("report.tmpl").Funcs(funcMap).ParseFS(templateFS, "templates/report.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	outputPath := fmt.Sprintf("%s/%s", e.OutputDir, filename)
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer f.Close()

	if rangeDays <= 0 {
		rangeDays = 30
	}

	data := map[string]any{
		"Date":        time.Now().Format("2006-01-02 15:04:05"),
		"Tasks":       tasks,
		"Stats":       stats,
		"Metrics":     analytics.ProductivityMetrics(tasks),
		"Completion":  analytics.TaskCompletion(tasks, rangeDays),
		"TimeRows":    analytics.TimeAnalytics(tasks),
		"Progress":    analytics.ProjectProgress(tasks),
		"Trends":      analytics.Trends(tasks, "completion"),
		"SubmittedBy": author,
		"RangeDays":   rangeDays,
	}

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	return nil
}
