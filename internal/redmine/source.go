package redmine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prathameshp107/daily-task-tracker-sub000/internal/analytics"
)

// Source adapts a tracker project into the aggregator's task shape.
type Source struct {
	Client  *Client
	Project string
}

func NewSource(client *Client, project string) *Source {
	return &Source{Client: client, Project: project}
}

func (s *Source) Name() string {
	return "Redmine"
}

func (s *Source) HealthCheck(ctx context.Context) error {
	_, err := s.Client.CurrentUser(ctx)
	return err
}

// FetchTasks pulls the project's issues and maps them to tasks. When user
// is set, only issues authored by or assigned to that name are kept; when
// the window bounds are set, tasks dated outside it are dropped.
func (s *Source) FetchTasks(ctx context.Context, user string, start, end time.Time) ([]analytics.Task, error) {
	project, err := s.Client.FindProject(ctx, s.Project)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %q not found on %s", s.Project, s.Client.BaseURL())
	}

	issues, err := s.Client.IssuesByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	tasks := make([]analytics.Task, 0, len(issues))
	for _, is := range issues {
		if user != "" &&
			!strings.EqualFold(is.Author.Name, user) &&
			!strings.EqualFold(is.AssignedTo.Name, user) {
			continue
		}

		task := TaskFromIssue(is)
		if !start.IsZero() && task.Date.Before(start) {
			continue
		}
		if !end.IsZero() && task.Date.After(end) {
			continue
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// TaskFromIssue maps a tracker issue onto the aggregator's task shape.
// Spent hours become actuals, estimated hours the approved budget, and the
// month is derived from the issue's last update.
func TaskFromIssue(is Issue) analytics.Task {
	status := statusOf(is.Status)
	date := issueDate(is)

	taskType := is.Tracker.Name
	if taskType == "" {
		taskType = "Task"
	}

	return analytics.Task{
		ID:            strconv.Itoa(is.ID),
		Type:          taskType,
		Description:   is.Subject,
		TotalHours:    is.SpentHours,
		ApprovedHours: is.EstimatedHours,
		Project:       is.Project.Name,
		Date:          date,
		Month:         analytics.MonthOf(date),
		Note:          is.Description,
		Status:        status,
		Completed:     status == analytics.StatusDone,
	}
}

// statusOf maps a tracker status to the internal lifecycle. The closed
// flag is authoritative when present; the name heuristics exist for
// deployments that omit it.
func statusOf(st IssueStatus) analytics.Status {
	if st.IsClosed != nil {
		if *st.IsClosed {
			return analytics.StatusDone
		}
		if strings.Contains(strings.ToLower(st.Name), "progress") {
			return analytics.StatusInProgress
		}
		return analytics.StatusTodo
	}

	name := strings.ToLower(st.Name)
	switch {
	case strings.Contains(name, "done"), strings.Contains(name, "closed"):
		return analytics.StatusDone
	case strings.Contains(name, "progress"):
		return analytics.StatusInProgress
	default:
		return analytics.StatusTodo
	}
}

func issueDate(is Issue) time.Time {
	if t, err := time.Parse(time.RFC3339, is.UpdatedOn); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", is.StartDate); err == nil {
		return t
	}
	return time.Time{}
}
