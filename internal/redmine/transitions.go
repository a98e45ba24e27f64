package redmine

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// statusProperty is the journal detail name the tracker uses for status
// changes.
const statusProperty = "status_id"

// TransitionRule names a two-step status transition: the user must move an
// issue to First in one journal entry and to Second in a later entry. The
// shipped defaults mirror one deployment's workflow configuration; point the
// client at a differently configured tracker and these must be overridden.
type TransitionRule struct {
	Name   string
	First  int
	Second int
}

// Default rules for the workflow this tool was built against.
var (
	CodeReviewRule = TransitionRule{Name: "code-review", First: 7, Second: 16}
	FTReviewRule   = TransitionRule{Name: "ft-review", First: 2, Second: 11}
)

// MovedThrough reports whether the given user drove the issue through the
// rule's two checkpoints in order. Only that user's journal entries count,
// sorted chronologically; the second checkpoint must appear in a later
// entry than the first.
func MovedThrough(issue Issue, userID int, rule TransitionRule) bool {
	journals := userJournalsByTime(issue, userID)
	first := strconv.Itoa(rule.First)
	second := strconv.Itoa(rule.Second)

	firstSeen := false
	for _, j := range journals {
		reachedFirst := false
		for _, d := range j.Details {
			if d.Name != statusProperty {
				continue
			}
			if firstSeen && d.NewValue == second {
				return true
			}
			if d.NewValue == first {
				reachedFirst = true
			}
		}
		if reachedFirst {
			firstSeen = true
		}
	}
	return false
}

// FilterMovedThrough keeps the issues the user moved through the rule.
func FilterMovedThrough(issues []Issue, userID int, rule TransitionRule) []Issue {
	var out []Issue
	for _, is := range issues {
		if MovedThrough(is, userID, rule) {
			out = append(out, is)
		}
	}
	return out
}

func userJournalsByTime(issue Issue, userID int) []Journal {
	var js []Journal
	for _, j := range issue.Journals {
		if j.User.ID == userID {
			js = append(js, j)
		}
	}
	sort.SliceStable(js, func(i, k int) bool {
		ti, iok := parseJournalTime(js[i].CreatedOn)
		tk, kok := parseJournalTime(js[k].CreatedOn)
		if !iok || !kok {
			return false
		}
		return ti.Before(tk)
	})
	return js
}

func parseJournalTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IssuesWithUserInteraction orchestrates the full review-detection flow:
// resolve the user, find the project, page through its issues, pull
// journals, keep the issues the user touched, and return the union of the
// issues the user moved through any of the given rules, deduplicated by id.
// An unresolvable project or user yields an empty result, not an error.
func (c *Client) IssuesWithUserInteraction(ctx context.Context, projectName, username string, rules []TransitionRule, opts JournalFetchOptions) ([]Issue, error) {
	userID, err := strconv.Atoi(username)
	if err != nil {
		userID, err = c.FindUserID(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user %q: %w", username, err)
		}
	}
	if userID == 0 {
		return nil, nil
	}

	project, err := c.FindProject(ctx, projectName)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	issues, err := c.IssuesByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	withJournals, err := c.IssuesWithJournals(ctx, issues, opts)
	if err != nil {
		return nil, err
	}

	interacted := FilterByUserInteraction(withJournals, userID)

	if len(rules) == 0 {
		rules = []TransitionRule{CodeReviewRule, FTReviewRule}
	}

	seen := make(map[int]bool)
	var out []Issue
	for _, rule := range rules {
		for _, is := range FilterMovedThrough(interacted, userID, rule) {
			if !seen[is.ID] {
				seen[is.ID] = true
				out = append(out, is)
			}
		}
	}
	return out, nil
}
