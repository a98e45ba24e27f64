package redmine

import (
	"testing"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

func boolPtr(b bool) *bool { return &b }

func TestStatusOfClosedFlagAuthoritative(t *testing.T) {
	tests := []struct {
		name   string
		status IssueStatus
		want   analytics.Status
	}{
		{"closed flag wins over name", IssueStatus{Name: "In Progress", IsClosed: boolPtr(true)}, analytics.StatusDone},
		{"open with progress name", IssueStatus{Name: "In Progress", IsClosed: boolPtr(false)}, analytics.StatusInProgress},
		{"open plain", IssueStatus{Name: "New", IsClosed: boolPtr(false)}, analytics.StatusTodo},
		{"no flag, done name", IssueStatus{Name: "Done"}, analytics.StatusDone},
		{"no flag, closed name", IssueStatus{Name: "Closed"}, analytics.StatusDone},
		{"no flag, progress name", IssueStatus{Name: "In Progress"}, analytics.StatusInProgress},
		{"no flag, unknown name", IssueStatus{Name: "Triage"}, analytics.StatusTodo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := statusOf(tc.status); got != tc.want {
				t.Errorf("statusOf(%+v) = %s, want %s", tc.status, got, tc.want)
			}
		})
	}
}

func TestTaskFromIssue(t *testing.T) {
	issue := Issue{
		ID:             42,
		Subject:        "fix login flow",
		Description:    "session cookie expires early",
		Project:        NamedRef{ID: 1, Name: "Platform"},
		Tracker:        NamedRef{ID: 2, Name: "Bug"},
		Status:         IssueStatus{Name: "Closed", IsClosed: boolPtr(true)},
		EstimatedHours: 10,
		SpentHours:     8,
		UpdatedOn:      "2024-03-15T09:30:00Z",
	}

	task := TaskFromIssue(issue)

	if task.ID != "42" {
		t.Errorf("unexpected id %q", task.ID)
	}
	if task.Type != "Bug" || task.Project != "Platform" {
		t.Errorf("unexpected type/project %q/%q", task.Type, task.Project)
	}
	if task.TotalHours != 8 || task.ApprovedHours != 10 {
		t.Errorf("unexpected hours %v/%v", task.TotalHours, task.ApprovedHours)
	}
	if task.Status != analytics.StatusDone || !task.Completed {
		t.Errorf("expected completed done task, got %s/%v", task.Status, task.Completed)
	}
	if task.Month != "March" {
		t.Errorf("expected month March, got %q", task.Month)
	}
}

func TestTaskFromIssueFallbacks(t *testing.T) {
	task := TaskFromIssue(Issue{ID: 1, StartDate: "2024-01-05"})

	if task.Type != "Task" {
		t.Errorf("expected default type Task, got %q", task.Type)
	}
	if task.Month != "January" {
		t.Errorf("expected start date fallback, got month %q", task.Month)
	}

	undated := TaskFromIssue(Issue{ID: 2})
	if undated.Month == "" {
		t.Error("undated issues must still derive a month")
	}
	if !undated.Date.IsZero() {
		t.Error("unparseable dates must map to a zero date")
	}
}
