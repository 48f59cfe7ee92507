package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spec-kit/issue-bridge/internal/config"
	"github.com/spec-kit/issue-bridge/internal/domain"
)

// Tracker is the issue-tracking collaborator surface the flows depend on.
type Tracker interface {
	CreateIssue(ctx context.Context, params domain.TicketParams) (domain.CreatedIssue, error)
	AddRemoteLink(ctx context.Context, issueKey, url, title string) error
	AddComment(ctx context.Context, issueKey, body string) error
}

// Client is a JIRA REST API v2 client.
type Client struct {
	baseURL    string
	authHeader string
	httpClient *http.Client
}

// NewClient creates a new JIRA client from the given config.
func NewClient(cfg config.JiraConfig) *Client {
	creds := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.APIToken))
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authHeader: "Basic " + creds,
		httpClient: &http.Client{},
	}
}

// CreateIssue creates one issue and returns its tracker identity.
func (c *Client) CreateIssue(ctx context.Context, params domain.TicketParams) (domain.CreatedIssue, error) {
	components := make([]NamedRef, 0, len(params.Components))
	for _, name := range params.Components {
		components = append(components, NamedRef{Name: name})
	}
	payload := CreateIssuePayload{Fields: IssueFields{
		Project:     ProjectRef{Key: params.ProjectKey},
		IssueType:   IssueTypeRef{Name: params.IssueType},
		Summary:     params.Summary,
		Description: params.Description,
		Labels:      params.Labels,
		Components:  components,
	}}

	var created CreateIssueResponse
	if err := c.post(ctx, "/rest/api/2/issue", payload, &created); err != nil {
		return domain.CreatedIssue{}, err
	}
	return domain.CreatedIssue{ID: created.ID, Key: created.Key, Self: created.Self}, nil
}

// AddRemoteLink attaches an external URL to an issue.
func (c *Client) AddRemoteLink(ctx context.Context, issueKey, url, title string) error {
	payload := RemoteLinkPayload{Object: RemoteLinkObject{URL: url, Title: title}}
	return c.post(ctx, fmt.Sprintf("/rest/api/2/issue/%s/remotelink", issueKey), payload, nil)
}

// AddComment adds a plain-text comment to an issue.
func (c *Client) AddComment(ctx context.Context, issueKey, body string) error {
	return c.post(ctx, fmt.Sprintf("/rest/api/2/issue/%s/comment", issueKey), CommentPayload{Body: body}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("JIRA API returned %d: %s", resp.StatusCode, string(body))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
