package redmine

// Wire types for the tracker's REST API. Dates are kept as the strings the
// API returns; parsing happens at the mapping boundary.

type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Description string `json:"description"`
}

type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// IssueStatus carries the tracker's closed flag when the deployment exposes
// it. IsClosed is a pointer so "absent" is distinguishable from "open".
type IssueStatus struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsClosed *bool  `json:"is_closed,omitempty"`
}

type CustomField struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type JournalDetail struct {
	Property string `json:"property"`
	Name     string `json:"name"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

type Journal struct {
	ID        int             `json:"id"`
	User      NamedRef        `json:"user"`
	Notes     string          `json:"notes"`
	CreatedOn string          `json:"created_on"`
	Details   []JournalDetail `json:"details"`
}

type Issue struct {
	ID             int           `json:"id"`
	Subject        string        `json:"subject"`
	Description    string        `json:"description"`
	Project        NamedRef      `json:"project"`
	Tracker        NamedRef      `json:"tracker"`
	Status         IssueStatus   `json:"status"`
	Priority       NamedRef      `json:"priority"`
	Author         NamedRef      `json:"author"`
	AssignedTo     NamedRef      `json:"assigned_to"`
	StartDate      string        `json:"start_date"`
	DueDate        string        `json:"due_date"`
	EstimatedHours float64       `json:"estimated_hours"`
	SpentHours     float64       `json:"spent_hours"`
	CustomFields   []CustomField `json:"custom_fields"`
	CreatedOn      string        `json:"created_on"`
	UpdatedOn      string        `json:"updated_on"`
	Journals       []Journal     `json:"journals"`
}

type User struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Name returns the display name the issue author field uses.
func (u User) Name() string {
	if u.Firstname == "" && u.Lastname == "" {
		return u.Login
	}
	if u.Lastname == "" {
		return u.Firstname
	}
	return u.Firstname + " " + u.Lastname
}

type projectsResponse struct {
	Projects   []Project `json:"projects"`
	TotalCount int       `json:"total_count"`
}

type issuesResponse struct {
	Issues     []Issue `json:"issues"`
	TotalCount int     `json:"total_count"`
	Offset     int     `json:"offset"`
	Limit      int     `json:"limit"`
}

type issueResponse struct {
	Issue Issue `json:"issue"`
}

type currentUserResponse struct {
	User User `json:"user"`
}
