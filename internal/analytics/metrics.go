package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// TimePoint is one day in the cumulative completion series.
type TimePoint struct {
	Date           string `json:"date"`
	Completed      int    `json:"completed"`
	Pending        int    `json:"pending"`
	CompletionRate int    `json:"completionRate"`
}

// TaskCompletion produces one point per day over the trailing window
// (7/30/90/365 days). Each point is a running count of tasks dated on or
// before that day, split into completed and pending, with the rate rounded
// to the nearest whole percent. Cumulative, not a per-day delta.
func TaskCompletion(tasks []Task, days int) []TimePoint {
	if days <= 0 {
		days = 7
	}

	now := time.Now()
	points := make([]TimePoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayEnd := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

		completed, total := 0, 0
		for _, t := range tasks {
			if effectiveDate(t, now).After(dayEnd) {
				continue
			}
			total++
			if t.Status == StatusDone {
				completed++
			}
		}

		points = append(points, TimePoint{
			Date:           day.Format("2006-01-02"),
			Completed:      completed,
			Pending:        total - completed,
			CompletionRate: percent(completed, total),
		})
	}
	return points
}

// TimeRow compares estimated against actual hours for one
// (project, task type) group.
type TimeRow struct {
	Project        string  `json:"project"`
	Type           string  `json:"taskType"`
	EstimatedHours float64 `json:"estimatedHours"`
	ActualHours    float64 `json:"actualHours"`
	Accuracy       int     `json:"accuracy"`
	Variance       float64 `json:"variance"`
}

// TimeAnalytics groups by (project, type), summing approved hours as the
// estimate and total hours as the actual. Accuracy is
// round((1-|actual-estimated|/estimated)*100) floored at zero, and zero
// when nothing was estimated. Variance is actual minus estimated, one
// decimal. Group order follows first appearance in the input.
func TimeAnalytics(tasks []Task) []TimeRow {
	type key struct{ project, typ string }
	index := make(map[key]int)
	var rows []TimeRow

	for _, t := range tasks {
		k := key{t.Project, t.Type}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, TimeRow{Project: t.Project, Type: t.Type})
		}
		rows[i].EstimatedHours += t.ApprovedHours
		rows[i].ActualHours += t.TotalHours
	}

	for i := range rows {
		est, act := rows[i].EstimatedHours, rows[i].ActualHours
		if est > 0 {
			acc := int(math.Round((1 - math.Abs(act-est)/est) * 100))
			if acc < 0 {
				acc = 0
			}
			rows[i].Accuracy = acc
		}
		rows[i].Variance = round1(act - est)
	}
	return rows
}

// ProgressRow summarizes one project's tasks by status.
type ProgressRow struct {
	Project              string  `json:"project"`
	TotalTasks           int     `json:"totalTasks"`
	CompletedTasks       int     `json:"completedTasks"`
	InProgressTasks      int     `json:"inProgressTasks"`
	TodoTasks            int     `json:"todoTasks"`
	CompletionPercentage int     `json:"completionPercentage"`
	AvgCompletionTime    float64 `json:"avgCompletionTime"`
	OverdueTasks         int     `json:"overdueTasks"`
}

// ProjectProgress groups tasks by project and counts them per status.
// AvgCompletionTime is the mean total hours of the project's completed
// tasks, one decimal. OverdueTasks stays 0: due dates are not wired into
// the task shape yet.
func ProjectProgress(tasks []Task) []ProgressRow {
	index := make(map[string]int)
	var rows []ProgressRow
	completedHours := make(map[string]float64)

	for _, t := range tasks {
		i, ok := index[t.Project]
		if !ok {
			i = len(rows)
			index[t.Project] = i
			rows = append(rows, ProgressRow{Project: t.Project})
		}
		rows[i].TotalTasks++
		switch t.Status {
		case StatusDone:
			rows[i].CompletedTasks++
			completedHours[t.Project] += t.TotalHours
		case StatusInProgress:
			rows[i].InProgressTasks++
		default:
			rows[i].TodoTasks++
		}
	}

	for i := range rows {
		rows[i].CompletionPercentage = percent(rows[i].CompletedTasks, rows[i].TotalTasks)
		if rows[i].CompletedTasks > 0 {
			rows[i].AvgCompletionTime = round1(completedHours[rows[i].Project] / float64(rows[i].CompletedTasks))
		}
	}
	return rows
}

// Metrics is the headline productivity summary.
type Metrics struct {
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	CompletionRate     int     `json:"completionRate"`
	AvgCompletionTime  float64 `json:"avgCompletionTime"`
	TaskVelocity       float64 `json:"taskVelocity"`
	ProductivityScore  int     `json:"productivityScore"`
	EstimationAccuracy int     `json:"estimationAccuracy"`
}

// ProductivityMetrics derives the dashboard headline numbers. Velocity
// assumes a fixed four-week span rather than the actual date range of the
// input. The score blends rate, velocity and speed with capped weights and
// is clamped into [0,100].
func ProductivityMetrics(tasks []Task) Metrics {
	m := Metrics{TotalTasks: len(tasks)}
	if len(tasks) == 0 {
		return m
	}

	var completedHours float64
	var accSum float64
	accCount := 0
	for _, t := range tasks {
		if t.Status == StatusDone {
			m.CompletedTasks++
			completedHours += t.TotalHours
		}
		if t.ApprovedHours > 0 {
			acc := 1 - math.Abs(t.TotalHours-t.ApprovedHours)/t.ApprovedHours
			if acc < 0 {
				acc = 0
			}
			accSum += acc
			accCount++
		}
	}

	m.CompletionRate = percent(m.CompletedTasks, m.TotalTasks)
	if m.CompletedTasks > 0 {
		m.AvgCompletionTime = round1(completedHours / float64(m.CompletedTasks))
	}
	m.TaskVelocity = round1(float64(m.CompletedTasks) / 4)

	speed := 0.0
	if m.AvgCompletionTime > 0 {
		speed = math.Min(100/m.AvgCompletionTime, 20)
	}
	score := int(math.Round(float64(m.CompletionRate)*0.4 +
		math.Min(m.TaskVelocity*10, 40) +
		speed))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	m.ProductivityScore = score

	if accCount > 0 {
		m.EstimationAccuracy = int(math.Round(accSum / float64(accCount) * 100))
	}
	return m
}

// TrendPoint is one weekly bucket in a trend series.
type TrendPoint struct {
	Week  string  `json:"week"`
	Value float64 `json:"value"`
}

// Trends returns four weekly buckets of randomized placeholder values.
// The numbers are NOT derived from the input; the real trend computation
// was never built and this stub keeps the dashboard slot populated.
func Trends(tasks []Task, metric string) []TrendPoint {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	points := make([]TrendPoint, 0, 4)
	for week := 1; week <= 4; week++ {
		points = append(points, TrendPoint{
			Week:  fmt.Sprintf("Week %d", week),
			Value: round1(rnd.Float64() * 100),
		})
	}
	return points
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
