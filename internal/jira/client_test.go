package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-bridge/internal/config"
	"github.com/spec-kit/issue-bridge/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.JiraConfig{
		BaseURL:  server.URL,
		Email:    "bot@example.com",
		APIToken: "secret",
	})
}

func TestCreateIssue(t *testing.T) {
	var got CreateIssuePayload
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/2/issue", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateIssueResponse{
			ID:   "10001",
			Key:  "SUP-42",
			Self: "https://jira.example.com/rest/api/2/issue/10001",
		})
	})

	created, err := client.CreateIssue(context.Background(), domain.TicketParams{
		ProjectKey:  "SUP",
		IssueType:   "Bug",
		Summary:     "Login broken",
		Description: "cannot sign in",
		Labels:      []string{"support", "high"},
		Components:  []string{"API", "Billing"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.CreatedIssue{
		ID:   "10001",
		Key:  "SUP-42",
		Self: "https://jira.example.com/rest/api/2/issue/10001",
	}, created)

	// Basic auth over email:token.
	assert.Equal(t, "Basic Ym90QGV4YW1wbGUuY29tOnNlY3JldA==", gotAuth)

	assert.Equal(t, "SUP", got.Fields.Project.Key)
	assert.Equal(t, "Bug", got.Fields.IssueType.Name)
	assert.Equal(t, "Login broken", got.Fields.Summary)
	assert.Equal(t, []string{"support", "high"}, got.Fields.Labels)
	require.Len(t, got.Fields.Components, 2)
	assert.Equal(t, "API", got.Fields.Components[0].Name)
}

func TestCreateIssueNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors": {"summary": "required"}}`))
	})

	_, err := client.CreateIssue(context.Background(), domain.TicketParams{ProjectKey: "SUP"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "required")
}

func TestAddRemoteLink(t *testing.T) {
	var got RemoteLinkPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/SUP-42/remotelink", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.AddRemoteLink(context.Background(), "SUP-42",
		"https://acme.slack.com/archives/C1/p1005", "Slack thread")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.slack.com/archives/C1/p1005", got.Object.URL)
	assert.Equal(t, "Slack thread", got.Object.Title)
}

func TestAddComment(t *testing.T) {
	var got CommentPayload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/SUP-42/comment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, client.AddComment(context.Background(), "SUP-42", "Jane: here you go"))
	assert.Equal(t, "Jane: here you go", got.Body)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := NewClient(config.JiraConfig{BaseURL: server.URL + "/", Email: "a", APIToken: "b"})
	require.NoError(t, client.AddComment(context.Background(), "SUP-1", "hi"))
	assert.Equal(t, "/rest/api/2/issue/SUP-1/comment", gotPath)
}
