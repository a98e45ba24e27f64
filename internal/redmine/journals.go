package redmine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBatchSize  = 80
	defaultBatchDelay = time.Second
)

// JournalFetchOptions bounds the journal fan-out. Zero values use the
// defaults: batches of 80 issues, one second between batches.
type JournalFetchOptions struct {
	BatchSize int
	Delay     time.Duration
}

// IssuesWithJournals fans IssueWithJournals out over the input in fixed-size
// concurrent batches, paced by a rate limiter between batches so the remote
// tracker is not hammered. A failed per-issue fetch is logged and replaced
// by the bare issue with no journals; it does not abort the batch. Issues
// whose journal list ends up empty are excluded from the result.
func (c *Client) IssuesWithJournals(ctx context.Context, issues []Issue, opts JournalFetchOptions) ([]Issue, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.Delay <= 0 {
		opts.Delay = defaultBatchDelay
	}

	limiter := rate.NewLimiter(rate.Every(opts.Delay), 1)
	out := make([]Issue, 0, len(issues))

	for start := 0; start < len(issues); start += opts.BatchSize {
		if err := limiter.Wait(ctx); err != nil {
			return out, err
		}

		end := start + opts.BatchSize
		if end > len(issues) {
			end = len(issues)
		}
		batch := issues[start:end]
		results := make([]Issue, len(batch))

		var wg sync.WaitGroup
		for i, is := range batch {
			wg.Add(1)
			go func(i int, is Issue) {
				defer wg.Done()
				full, err := c.IssueWithJournals(ctx, is.ID)
				if err != nil {
					c.logger.Warn("journal fetch failed", "issue", is.ID, "error", err)
					is.Journals = nil
					results[i] = is
					return
				}
				results[i] = *full
			}(i, is)
		}
		wg.Wait()

		for _, r := range results {
			if len(r.Journals) > 0 {
				out = append(out, r)
			}
		}
	}

	return out, nil
}

// FilterByUserInteraction keeps issues the user authored or acted on in any
// journal entry.
func FilterByUserInteraction(issues []Issue, userID int) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Author.ID == userID {
			out = append(out, is)
			continue
		}
		for _, j := range is.Journals {
			if j.User.ID == userID {
				out = append(out, is)
				break
			}
		}
	}
	return out
}
