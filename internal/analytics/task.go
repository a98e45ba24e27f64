package analytics

import "time"

// Status is the internal task lifecycle state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Task is the shape the aggregator computes over, mapped from tracker
// issues or entered directly by the user.
type Task struct {
	ID            string
	Type          string
	Description   string
	TotalHours    float64
	ApprovedHours float64
	Project       string
	Date          time.Time
	Month         string
	Note          string
	Status        Status
	Completed     bool
}

// MonthOf derives the English month name for a task date, defaulting to the
// current month when the date is absent.
func MonthOf(t time.Time) string {
	if t.IsZero() {
		return time.Now().Month().String()
	}
	return t.Month().String()
}

// effectiveDate is the date used by range filters and the completion
// series: the task's own date, or now when none was derivable.
func effectiveDate(t Task, now time.Time) time.Time {
	if t.Date.IsZero() {
		return now
	}
	return t.Date
}
