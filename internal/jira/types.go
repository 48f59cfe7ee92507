package jira

// IssueFields is the REST create payload body under "fields".
type IssueFields struct {
	Project     ProjectRef   `json:"project"`
	IssueType   IssueTypeRef `json:"issuetype"`
	Summary     string       `json:"summary"`
	Description string       `json:"description,omitempty"`
	Labels      []string     `json:"labels,omitempty"`
	Components  []NamedRef   `json:"components,omitempty"`
}

// ProjectRef identifies a project by key.
type ProjectRef struct {
	Key string `json:"key"`
}

// IssueTypeRef identifies an issue type by name.
type IssueTypeRef struct {
	Name string `json:"name"`
}

// NamedRef is a generic name wrapper used for components.
type NamedRef struct {
	Name string `json:"name"`
}

// CreateIssuePayload wraps the fields for POST /issue.
type CreateIssuePayload struct {
	Fields IssueFields `json:"fields"`
}

// CreateIssueResponse is the create endpoint's answer.
type CreateIssueResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// RemoteLinkPayload attaches an external URL to an issue.
type RemoteLinkPayload struct {
	Object RemoteLinkObject `json:"object"`
}

// RemoteLinkObject carries the link target.
type RemoteLinkObject struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// CommentPayload adds a plain-text comment.
type CommentPayload struct {
	Body string `json:"body"`
}
