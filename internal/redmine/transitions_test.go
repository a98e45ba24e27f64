package redmine

import (
	"strconv"
	"testing"
)

func statusJournal(userID int, createdOn string, newStatus int) Journal {
	return Journal{
		User:      NamedRef{ID: userID},
		CreatedOn: createdOn,
		Details: []JournalDetail{
			{Property: "attr", Name: "status_id", NewValue: strconv.Itoa(newStatus)},
		},
	}
}

func TestMovedThroughInOrder(t *testing.T) {
	issue := Issue{
		ID: 1,
		Journals: []Journal{
			statusJournal(5, "2024-03-01T10:00:00Z", 7),
			statusJournal(5, "2024-03-02T10:00:00Z", 16),
		},
	}

	if !MovedThrough(issue, 5, CodeReviewRule) {
		t.Error("7 then 16 by the same user must match")
	}
}

func TestMovedThroughReversedOrderExcluded(t *testing.T) {
	issue := Issue{
		ID: 1,
		Journals: []Journal{
			statusJournal(5, "2024-03-01T10:00:00Z", 16),
			statusJournal(5, "2024-03-02T10:00:00Z", 7),
		},
	}

	if MovedThrough(issue, 5, CodeReviewRule) {
		t.Error("16 before 7 must not match")
	}
}

func TestMovedThroughRequiresLaterEntry(t *testing.T) {
	// Both checkpoints in one journal entry: the second must come in a
	// later entry, so this does not match.
	issue := Issue{
		ID: 1,
		Journals: []Journal{
			{
				User:      NamedRef{ID: 5},
				CreatedOn: "2024-03-01T10:00:00Z",
				Details: []JournalDetail{
					{Property: "attr", Name: "status_id", NewValue: "7"},
					{Property: "attr", Name: "status_id", NewValue: "16"},
				},
			},
		},
	}

	if MovedThrough(issue, 5, CodeReviewRule) {
		t.Error("both checkpoints in a single entry must not match")
	}
}

func TestMovedThroughIgnoresOtherUsers(t *testing.T) {
	issue := Issue{
		ID: 1,
		Journals: []Journal{
			statusJournal(9, "2024-03-01T10:00:00Z", 7),
			statusJournal(5, "2024-03-02T10:00:00Z", 16),
		},
	}

	if MovedThrough(issue, 5, CodeReviewRule) {
		t.Error("the first checkpoint by another user must not count")
	}
}

func TestMovedThroughSortsByTimestamp(t *testing.T) {
	// Entries arrive out of order; chronological order still matches.
	issue := Issue{
		ID: 1,
		Journals: []Journal{
			statusJournal(5, "2024-03-02T10:00:00Z", 16),
			statusJournal(5, "2024-03-01T10:00:00Z", 7),
		},
	}

	if !MovedThrough(issue, 5, CodeReviewRule) {
		t.Error("chronological ordering must be applied before matching")
	}
}

func TestMovedThroughFTReviewRule(t *testing.T) {
	issue := Issue{
		ID: 2,
		Journals: []Journal{
			statusJournal(5, "2024-03-01T10:00:00Z", 2),
			statusJournal(5, "2024-03-03T10:00:00Z", 11),
		},
	}

	if !MovedThrough(issue, 5, FTReviewRule) {
		t.Error("2 then 11 must match the ft-review rule")
	}
	if MovedThrough(issue, 5, CodeReviewRule) {
		t.Error("ft-review transitions must not match the code-review rule")
	}
}

func TestFilterMovedThrough(t *testing.T) {
	match := Issue{ID: 1, Journals: []Journal{
		statusJournal(5, "2024-03-01T10:00:00Z", 7),
		statusJournal(5, "2024-03-02T10:00:00Z", 16),
	}}
	noMatch := Issue{ID: 2, Journals: []Journal{
		statusJournal(5, "2024-03-01T10:00:00Z", 7),
	}}

	out := FilterMovedThrough([]Issue{match, noMatch}, 5, CodeReviewRule)
	if len(out) != 1 || out[0].ID != 1 {
		t.Errorf("expected only issue 1, got %+v", out)
	}
}
