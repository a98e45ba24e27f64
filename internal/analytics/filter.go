package analytics

import (
	"strings"
	"time"
)

// Filters selects tasks along four dimensions. Dimensions combine
// conjunctively; options within a dimension combine disjunctively. An empty
// dimension passes everything through. From/To, when set, override the
// rolling RangeDays window.
type Filters struct {
	RangeDays int
	From      time.Time
	To        time.Time
	Projects  []string
	Types     []string
	Statuses  []Status
}

// FilterTasks applies the filters in order: date range, project membership,
// type membership, status membership.
func FilterTasks(tasks []Task, f Filters) []Task {
	now := time.Now()
	out := make([]Task, 0, len(tasks))

	for _, t := range tasks {
		if !f.matchDate(t, now) {
			continue
		}
		if len(f.Projects) > 0 && !containsFold(f.Projects, t.Project) {
			continue
		}
		if len(f.Types) > 0 && !containsFold(f.Types, t.Type) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (f Filters) matchDate(t Task, now time.Time) bool {
	date := effectiveDate(t, now)

	if !f.From.IsZero() || !f.To.IsZero() {
		if !f.From.IsZero() && date.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && date.After(f.To) {
			return false
		}
		return true
	}

	if f.RangeDays > 0 {
		cutoff := now.AddDate(0, 0, -f.RangeDays)
		return !date.Before(cutoff)
	}

	return true
}

func containsFold(options []string, v string) bool {
	for _, o := range options {
		if strings.EqualFold(o, v) {
			return true
		}
	}
	return false
}

func containsStatus(options []Status, v Status) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
