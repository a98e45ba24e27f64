package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

type ExcelExporter struct {
	OutputDir string
}

func NewExcelExporter(outputDir string) *ExcelExporter {
	return &ExcelExporter{OutputDir: outputDir}
}

func (e *ExcelExporter) Export(tasks []analytics.Task, start, end time.Time) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("tasks_%s.xlsx", timestamp))

	f := excelize.NewFile()
	defer f.Close()

	projectTasks := make(map[string][]analytics.Task)
	projectNames := []string{}
	projectNameSet := make(map[string]bool)

	for _, task := range tasks {
		project := task.Project
		if project == "" {
			project = "Unknown"
		}

		if !projectNameSet[project] {
			projectNames = append(projectNames, project)
			projectNameSet[project] = true
		}

		projectTasks[project] = append(projectTasks[project], task)
	}

	sort.Strings(projectNames)

	if err := e.createDashboardSheet(f, "Dashboard", tasks, start, end); err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	if err := e.createTimeAnalyticsSheet(f, "Time Analytics", tasks); err != nil {
		return fmt.Errorf("failed to create time analytics: %w", err)
	}

	for _, project := range projectNames {
		sheetName := sanitizeSheetName(project)
		if err := e.createProjectSheet(f, sheetName, projectTasks[project]); err != nil {
			return fmt.Errorf("failed to create sheet for %s: %w", project, err)
		}
	}

	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save excel file: %w", err)
	}

	return nil
}

func (e *ExcelExporter) headerStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	return style
}

func (e *ExcelExporter) totalStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#B4C7E7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#000000", Style: 1},
			{Type: "right", Color: "#000000", Style: 1},
			{Type: "top", Color: "#000000", Style: 1},
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	return style
}

func (e *ExcelExporter) createDashboardSheet(f *excelize.File, sheetName string, tasks []analytics.Task, start, end time.Time) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle := e.headerStyle(f)
	totalStyle := e.totalStyle(f)

	f.SetCellValue(sheetName, "A1", "Date From:")
	f.SetCellValue(sheetName, "B1", formatTaskDate(start))
	f.SetCellValue(sheetName, "A2", "Date to:")
	f.SetCellValue(sheetName, "B2", formatTaskDate(end))

	metrics := analytics.ProductivityMetrics(tasks)
	metricRows := []struct {
		label string
		value any
	}{
		{"Total Tasks", metrics.TotalTasks},
		{"Completed Tasks", metrics.CompletedTasks},
		{"Completion Rate (%)", metrics.CompletionRate},
		{"Avg Completion Time (h)", metrics.AvgCompletionTime},
		{"Task Velocity (per week)", metrics.TaskVelocity},
		{"Productivity Score", metrics.ProductivityScore},
		{"Estimation Accuracy (%)", metrics.EstimationAccuracy},
	}

	row := 4
	f.SetCellValue(sheetName, cellName(1, row), "Metric")
	f.SetCellStyle(sheetName, cellName(1, row), cellName(1, row), headerStyle)
	f.SetCellValue(sheetName, cellName(2, row), "Value")
	f.SetCellStyle(sheetName, cellName(2, row), cellName(2, row), headerStyle)
	row++

	for _, m := range metricRows {
		f.SetCellValue(sheetName, cellName(1, row), m.label)
		f.SetCellValue(sheetName, cellName(2, row), m.value)
		row++
	}

	row += 2
	progressHeaders := []string{"Project", "Total", "Completed", "In Progress", "Todo", "Completion (%)", "Avg Completion (h)", "Overdue"}
	for col, h := range progressHeaders {
		cell := cellName(col+1, row)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	row++

	totals := analytics.ProgressRow{Project: "Total"}
	for _, p := range analytics.ProjectProgress(tasks) {
		f.SetCellValue(sheetName, cellName(1, row), p.Project)
		f.SetCellValue(sheetName, cellName(2, row), p.TotalTasks)
		f.SetCellValue(sheetName, cellName(3, row), p.CompletedTasks)
		f.SetCellValue(sheetName, cellName(4, row), p.InProgressTasks)
		f.SetCellValue(sheetName, cellName(5, row), p.TodoTasks)
		f.SetCellValue(sheetName, cellName(6, row), p.CompletionPercentage)
		f.SetCellValue(sheetName, cellName(7, row), p.AvgCompletionTime)
		f.SetCellValue(sheetName, cellName(8, row), p.OverdueTasks)
		totals.TotalTasks += p.TotalTasks
		totals.CompletedTasks += p.CompletedTasks
		totals.InProgressTasks += p.InProgressTasks
		totals.TodoTasks += p.TodoTasks
		row++
	}

	f.SetCellValue(sheetName, cellName(1, row), totals.Project)
	f.SetCellValue(sheetName, cellName(2, row), totals.TotalTasks)
	f.SetCellValue(sheetName, cellName(3, row), totals.CompletedTasks)
	f.SetCellValue(sheetName, cellName(4, row), totals.InProgressTasks)
	f.SetCellValue(sheetName, cellName(5, row), totals.TodoTasks)
	for col := 1; col <= 8; col++ {
		f.SetCellStyle(sheetName, cellName(col, row), cellName(col, row), totalStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 25)
	f.SetColWidth(sheetName, "B", "H", 15)

	return nil
}

func (e *ExcelExporter) createTimeAnalyticsSheet(f *excelize.File, sheetName string, tasks []analytics.Task) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle := e.headerStyle(f)

	headers := []string{"Project", "Task Type", "Estimated Hours", "Actual Hours", "Accuracy (%)", "Variance"}
	for col, h := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	titleCaser := cases.Title(language.English)
	for i, row := range analytics.TimeAnalytics(tasks) {
		r := i + 2
		f.SetCellValue(sheetName, cellName(1, r), row.Project)
		f.SetCellValue(sheetName, cellName(2, r), titleCaser.String(row.Type))
		f.SetCellValue(sheetName, cellName(3, r), row.EstimatedHours)
		f.SetCellValue(sheetName, cellName(4, r), row.ActualHours)
		f.SetCellValue(sheetName, cellName(5, r), row.Accuracy)
		f.SetCellValue(sheetName, cellName(6, r), row.Variance)
	}

	f.SetColWidth(sheetName, "A", "B", 20)
	f.SetColWidth(sheetName, "C", "F", 15)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func (e *ExcelExporter) createProjectSheet(f *excelize.File, sheetName string, tasks []analytics.Task) error {
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	headerStyle := e.headerStyle(f)

	headers := []string{
		"#",
		"Task",
		"Type",
		"Status",
		"Month",
		"Total Hours",
		"Approved Hours",
		"Date",
		"Note",
	}

	for col, header := range headers {
		cell := cellName(col+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, task := range tasks {
		row := i + 2
		f.SetCellValue(sheetName, cellName(1, row), i+1)
		f.SetCellValue(sheetName, cellName(2, row), task.Description)
		f.SetCellValue(sheetName, cellName(3, row), task.Type)
		f.SetCellValue(sheetName, cellName(4, row), string(task.Status))
		f.SetCellValue(sheetName, cellName(5, row), task.Month)
		f.SetCellValue(sheetName, cellName(6, row), task.TotalHours)
		f.SetCellValue(sheetName, cellName(7, row), task.ApprovedHours)
		f.SetCellValue(sheetName, cellName(8, row), formatTaskDate(task.Date))
		f.SetCellValue(sheetName, cellName(9, row), task.Note)
	}

	f.SetColWidth(sheetName, "A", "A", 5)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "E", 15)
	f.SetColWidth(sheetName, "F", "H", 15)
	f.SetColWidth(sheetName, "I", "I", 40)

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", columnLetter(col), row)
}

func columnLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}

func sanitizeSheetName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	name = strings.ReplaceAll(name, "?", "")
	name = strings.ReplaceAll(name, "*", "")
	name = strings.ReplaceAll(name, "[", "(")
	name = strings.ReplaceAll(name, "]", ")")

	if len(name) > 31 {
		name = name[:31]
	}

	return name
}
