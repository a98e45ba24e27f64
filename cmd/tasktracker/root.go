package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
	"github.com/prathameshp107/daily-task-tracker-sub000/internal/config"
	"github.com/prathameshp107/daily-task-tracker-sub000/internal/report"
	"github.com/prathameshp107/daily-task-tracker-sub000/internal/tasktracker"
)

var (
	configFile string
	trackerURL string
	apiKey     string
	project    string
	username   string
	startDate  string
	endDate    string
	output     string
	formats    string
	periodFlag string

	filterProjects string
	filterTypes    string
	filterStatuses string
)

var rootCmd = &cobra.Command{
	Use:   "tasktracker",
	Short: "Generate task reports and analytics from an issue tracker",
	Long:  `tasktracker pulls issues from a Redmine-style tracker and produces completion, time and productivity analytics as JSON/HTML/CSV/Excel reports.`,
	Run:   generateReport,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate the Excel/CSV dashboard workbook",
	Long:  `Generates the spreadsheet dashboard: productivity metrics, time analytics and per-project task sheets.`,
	Run:   generateSummary,
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List issues a user moved through the review transitions",
	Long:  `Scans a project's issue journals and prints the issues the given user drove through the configured review status transitions.`,
	Run:   listReviewIssues,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(reviewCmd)

	for _, cmd := range []*cobra.Command{rootCmd, summaryCmd, reviewCmd} {
		cmd.Flags().StringVar(&configFile, "config", "", "Path to YAML config file")
		cmd.Flags().StringVar(&trackerURL, "url", "", "Tracker base URL")
		cmd.Flags().StringVar(&apiKey, "api-key", "", "Tracker API key")
		cmd.Flags().StringVarP(&project, "project", "p", "", "Tracker project name")
	}

	rootCmd.Flags().StringVarP(&username, "user", "u", "", "Username to generate report for")
	rootCmd.Flags().StringVarP(&startDate, "start", "s", "", "Start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&endDate, "end", "e", "", "End date (YYYY-MM-DD)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output directory")
	rootCmd.Flags().StringVar(&formats, "format", "", "Comma-separated output formats (json,html,csv,excel)")
	rootCmd.Flags().StringVar(&filterProjects, "projects", "", "Comma-separated project names to include")
	rootCmd.Flags().StringVar(&filterTypes, "types", "", "Comma-separated task types to include")
	rootCmd.Flags().StringVar(&filterStatuses, "statuses", "", "Comma-separated statuses to include (todo, in-progress, done)")

	summaryCmd.Flags().StringVar(&periodFlag, "period", "this-week", "Period: today, yesterday, this-week, last-week, this-month, last-month, all-time")
	summaryCmd.Flags().StringVarP(&output, "output", "o", "", "Output directory")

	reviewCmd.Flags().StringVarP(&username, "user", "u", "", "Username or numeric user id")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if configFile != "" {
		if err := cfg.MergeFile(configFile); err != nil {
			return nil, err
		}
	}

	if trackerURL != "" {
		cfg.Tracker.BaseURL = trackerURL
	}
	if apiKey != "" {
		cfg.Tracker.APIKey = apiKey
	}
	if project != "" {
		cfg.Tracker.Project = project
	}
	if output != "" {
		cfg.Output.Directory = output
	}
	if formats != "" {
		cfg.Output.Format = parseCommaList(formats)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func generateReport(cmd *cobra.Command, args []string) {
	var start, end time.Time
	var err error

	if startDate == "" {
		start = time.Now().AddDate(0, 0, -7)
	} else {
		start, err = time.Parse("2006-01-02", startDate)
		if err != nil {
			fmt.Printf("Invalid start date: %v\n", err)
			return
		}
	}

	if endDate == "" {
		end = time.Now()
	} else {
		end, err = time.Parse("2006-01-02", endDate)
		if err != nil {
			fmt.Printf("Invalid end date: %v\n", err)
			return
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	if cfg.Tracker.Project == "" {
		fmt.Println("Project is required. Use --project or TRACKER_PROJECT")
		return
	}

	fmt.Printf("Generating report for %s (%s to %s)\n",
		cfg.Tracker.Project, start.Format("2006-01-02"), end.Format("2006-01-02"))

	bar := newSpinner("Fetching tasks")
	defer finishBar(bar)

	filters := analytics.Filters{
		Projects: parseCommaList(filterProjects),
		Types:    parseCommaList(filterTypes),
	}
	for _, s := range parseCommaList(filterStatuses) {
		filters.Statuses = append(filters.Statuses, analytics.Status(s))
	}

	app := tasktracker.New(cfg)
	tasks, err := app.GenerateReport(context.Background(), username, start, end, filters)
	if err != nil {
		fmt.Printf("\nError generating report: %v\n", err)
		return
	}

	if len(tasks) == 0 {
		fmt.Println("\nNo activities found for this period")
		return
	}

	fmt.Printf("\nReports saved to %s/\n", cfg.Output.Directory)
}

func generateSummary(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	if cfg.Tracker.Project == "" {
		fmt.Println("Project is required. Use --project or TRACKER_PROJECT")
		return
	}

	start, end, err := periodRange(periodFlag)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Generating summary for: %s -> %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))

	bar := newSpinner("Fetching tasks")
	defer finishBar(bar)

	app := tasktracker.New(cfg)
	tasks, err := app.Generator.Generate(context.Background(), "", start, end)
	if err != nil {
		fmt.Printf("\nFailed to fetch tasks: %v\n", err)
		return
	}

	fmt.Printf("Found %d tasks\n\n", len(tasks))

	exportBar := newSpinner("Generating summary workbook")
	defer finishBar(exportBar)

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		fmt.Printf("\nFailed to create output directory: %v\n", err)
		return
	}

	excelExporter := report.NewExcelExporter(cfg.Output.Directory)
	if err := excelExporter.Export(tasks, start, end); err != nil {
		fmt.Printf("\nExcel export failed: %v\n", err)
		return
	}

	csvExporter := report.NewCSVExporter(cfg.Output.Directory)
	if err := csvExporter.Export(tasks, start, end); err != nil {
		fmt.Printf("\nCSV export failed: %v\n", err)
		return
	}

	fmt.Println("\nSummary report ready!")
	fmt.Printf("  -> %s/tasks_*.xlsx (Dashboard + Time Analytics + per-project sheets)\n", cfg.Output.Directory)
	fmt.Printf("  -> %s/tasks_*_task_list.csv and tasks_*_dashboard.csv\n", cfg.Output.Directory)
}

func listReviewIssues(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	if cfg.Tracker.Project == "" || username == "" {
		fmt.Println("Both --project and --user are required")
		return
	}

	bar := newSpinner("Scanning issue journals")
	defer finishBar(bar)

	app := tasktracker.New(cfg)
	issues, err := app.Client().IssuesWithUserInteraction(
		context.Background(),
		cfg.Tracker.Project,
		username,
		app.TransitionRules(),
		app.JournalOptions(),
	)
	if err != nil {
		fmt.Printf("\nFailed to scan issues: %v\n", err)
		return
	}

	finishBar(bar)
	if len(issues) == 0 {
		fmt.Printf("\nNo review transitions found for %s in %s\n", username, cfg.Tracker.Project)
		return
	}

	fmt.Printf("\n%s moved %d issue(s) through review in %s:\n\n", username, len(issues), cfg.Tracker.Project)
	for _, is := range issues {
		fmt.Printf("  #%-6d %-12s %s\n", is.ID, is.Status.Name, is.Subject)
	}

	data, err := json.MarshalIndent(issues, "", "\t")
	if err == nil {
		filename := fmt.Sprintf("%s/review_%s_%s.json", cfg.Output.Directory, username, time.Now().Format("20060102"))
		if err := os.MkdirAll(cfg.Output.Directory, 0755); err == nil {
			if err := os.WriteFile(filename, data, 0644); err == nil {
				fmt.Printf("\n  -> %s\n", filename)
			}
		}
	}
}

func periodRange(period string) (time.Time, time.Time, error) {
	now := time.Now()
	var start, end time.Time

	switch strings.ToLower(period) {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.Add(24 * time.Hour)
	case "yesterday":
		yesterday := now.AddDate(0, 0, -1)
		start = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location())
		end = start.Add(24 * time.Hour)
	case "this-week", "thisweek":
		daysSinceMonday := int(now.Weekday() - time.Monday)
		if daysSinceMonday < 0 {
			daysSinceMonday += 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day()-daysSinceMonday, 0, 0, 0, 0, now.Location())
		end = start.Add(7 * 24 * time.Hour)
	case "last-week", "lastweek":
		daysSinceMonday := int(now.Weekday() - time.Monday)
		if daysSinceMonday < 0 {
			daysSinceMonday += 7
		}
		monday := now.AddDate(0, 0, -daysSinceMonday-7)
		start = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
		end = start.Add(7 * 24 * time.Hour)
	case "this-month", "thismonth":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	case "last-month", "lastmonth":
		firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start = firstOfThisMonth.AddDate(0, -1, 0)
		end = firstOfThisMonth
	case "all-time", "alltime":
		start = time.Time{}
		end = now.Add(24 * time.Hour)
	default:
		return start, end, fmt.Errorf("unknown period: %s (valid: today, yesterday, this-week, last-week, this-month, last-month, all-time)", period)
	}

	return start, end, nil
}
