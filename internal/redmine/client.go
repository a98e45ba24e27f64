package redmine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPageSize    = 100
	maxAccumulated     = 500
	defaultCacheTTL    = 5 * time.Minute
	defaultHTTPTimeout = 30 * time.Second

	apiKeyHeader = "X-Redmine-API-Key"
)

// APIError is returned for any non-2xx tracker response. Body holds the
// tracker's JSON error payload when one could be parsed, {} otherwise.
type APIError struct {
	StatusCode int
	Status     string
	Body       map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker API error (status %d %s): %v", e.StatusCode, e.Status, e.Body)
}

// Options tunes a Client. Zero values fall back to defaults.
type Options struct {
	HTTPTimeout time.Duration
	CacheTTL    time.Duration
	PageSize    int
	Logger      *slog.Logger
}

// Client talks to a Redmine-style issue tracker. Every GET goes through the
// request cache, so identical concurrent calls collapse into one network
// request and repeats within the TTL are served from memory.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	cache      *requestCache
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, opts Options) *Client {
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = defaultHTTPTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		pageSize:   opts.PageSize,
		httpClient: &http.Client{Timeout: opts.HTTPTimeout},
		cache:      newRequestCache(opts.CacheTTL),
		logger:     opts.Logger,
	}
}

// BaseURL returns the normalized tracker URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// ClearCache drops every cached response. Callers use it to force a refresh.
func (c *Client) ClearCache() { c.cache.clear() }

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	key := cacheKey(c.baseURL, endpoint, params)
	data, err := c.cache.do(key, func() ([]byte, error) {
		return c.fetch(ctx, endpoint, params)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       map[string]any{},
		}
		_ = json.Unmarshal(body, &apiErr.Body)
		return nil, apiErr
	}

	return body, nil
}

// FindProject returns the project whose name equals the given one after
// trimming and case folding. The server-side "name" parameter is only a
// loose filter, so the exact match happens here. A near-miss returns nil
// without an error.
func (c *Client) FindProject(ctx context.Context, name string) (*Project, error) {
	params := url.Values{}
	params.Set("name", name)

	var resp projectsResponse
	if err := c.getJSON(ctx, "/projects.json", params, &resp); err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(name))
	for i := range resp.Projects {
		if strings.ToLower(strings.TrimSpace(resp.Projects[i].Name)) == want {
			return &resp.Projects[i], nil
		}
	}
	return nil, nil
}

// IssuesByProject pages through the project's issues, most recently updated
// first, open and closed alike. Accumulation stops when the server runs out,
// when total_count from the first page is satisfied, or at 500 issues.
func (c *Client) IssuesByProject(ctx context.Context, projectID int) ([]Issue, error) {
	var all []Issue
	offset := 0
	total := -1

	for {
		params := url.Values{}
		params.Set("project_id", strconv.Itoa(projectID))
		params.Set("status_id", "*")
		params.Set("sort", "updated_on:desc")
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("offset", strconv.Itoa(offset))

		var resp issuesResponse
		if err := c.getJSON(ctx, "/issues.json", params, &resp); err != nil {
			return nil, err
		}
		if total < 0 {
			total = resp.TotalCount
		}
		if len(resp.Issues) == 0 {
			break
		}

		all = append(all, resp.Issues...)
		if len(all) >= maxAccumulated {
			all = all[:maxAccumulated]
			break
		}
		if len(all) >= total {
			break
		}
		offset += len(resp.Issues)
	}

	return all, nil
}

// IssueWithJournals fetches a single issue with its journal history included.
func (c *Client) IssueWithJournals(ctx context.Context, issueID int) (*Issue, error) {
	params := url.Values{}
	params.Set("include", "journals")

	var resp issueResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/issues/%d.json", issueID), params, &resp); err != nil {
		return nil, err
	}
	return &resp.Issue, nil
}

// CurrentUser resolves the user the API key authenticates as.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var resp currentUserResponse
	if err := c.getJSON(ctx, "/users/current.json", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// FindUserID resolves a username to the tracker's numeric user id. The
// current-user endpoint is checked first; when the name doesn't match the
// session user, the authors of the 100 most recently updated issues are
// scanned. That fallback misses users who authored no recent issues, which
// matches the tracker's lack of a user-search endpoint for API-key access.
// Returns 0 when no user matches.
func (c *Client) FindUserID(ctx context.Context, username string) (int, error) {
	want := strings.ToLower(strings.TrimSpace(username))
	if want == "" {
		return 0, nil
	}

	me, err := c.CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	if strings.ToLower(me.Login) == want || strings.ToLower(me.Name()) == want {
		return me.ID, nil
	}

	params := url.Values{}
	params.Set("status_id", "*")
	params.Set("sort", "updated_on:desc")
	params.Set("limit", strconv.Itoa(defaultPageSize))

	var resp issuesResponse
	if err := c.getJSON(ctx, "/issues.json", params, &resp); err != nil {
		return 0, err
	}
	for _, is := range resp.Issues {
		if strings.ToLower(is.Author.Name) == want {
			return is.Author.ID, nil
		}
	}
	return 0, nil
}
