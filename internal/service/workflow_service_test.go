package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/issue-bridge/internal/domain"
	"github.com/spec-kit/issue-bridge/internal/flows"
	"github.com/spec-kit/issue-bridge/internal/observability"
	"github.com/spec-kit/issue-bridge/internal/worker"
)

type workflowFixture struct {
	svc          *WorkflowService
	chat         *fakeChat
	tracker      *fakeTracker
	correlations *fakeCorrelations
	runner       *worker.Runner
	logs         *observer.ObservedLogs
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()
	logger, logs := newObservedLogger()

	chatFake := &fakeChat{
		messageRef: domain.ChatMessageRef{Channel: "C1", Timestamp: "100.5", TeamDomain: "acme"},
	}
	trackerFake := &fakeTracker{issue: domain.CreatedIssue{ID: "10001", Key: "SUP-42"}}
	correlations := &fakeCorrelations{}
	runner := worker.NewRunner(logger)

	registry := flows.NewRegistry(flows.NewSupportFlow("SUP"), flows.NewProductFlow("PROD"))

	eventSvc := NewEventService(EventDependencies{
		Chat:         chatFake,
		Tracker:      trackerFake,
		Correlations: correlations,
		TeamDomain:   "acme",
		Logger:       logger,
	})

	svc := NewWorkflowService(WorkflowDependencies{
		Registry:     registry,
		Chat:         chatFake,
		Tracker:      trackerFake,
		Correlations: correlations,
		EventService: eventSvc,
		Runner:       runner,
		Metrics:      observability.NewMetrics(),
		Logger:       logger,
		IssueBaseURL: "https://jira.example.com",
	})

	return &workflowFixture{
		svc:          svc,
		chat:         chatFake,
		tracker:      trackerFake,
		correlations: correlations,
		runner:       runner,
		logs:         logs,
	}
}

func (f *workflowFixture) wait(t *testing.T) {
	t.Helper()
	require.True(t, f.runner.Drain(2*time.Second), "background work did not drain")
}

func bugViewSubmission() domain.Interaction {
	state := &slack.ViewState{
		Values: map[string]map[string]slack.BlockAction{
			"sl_title": {
				"sl_title": {Type: "plain_text_input", Value: "Login broken"},
			},
			"ml_description": {
				"ml_description": {Type: "plain_text_input", Value: "cannot sign in"},
			},
			"ml_expected": {
				"ml_expected": {Type: "plain_text_input", Value: "successful login"},
			},
			"ml_currently": {
				"ml_currently": {Type: "plain_text_input", Value: "error 500"},
			},
		},
	}
	return domain.Interaction{
		Kind: domain.KindViewSubmission,
		Context: domain.RequestContext{
			TeamID:    "T1",
			User:      domain.UserRef{ID: "U1", Name: "jane"},
			ChannelID: "C1",
		},
		View: &domain.ViewSubmission{CallbackID: "support_bug", State: state},
	}
}

func TestSupportBugSubmissionCreatesLinksAndConfirms(t *testing.T) {
	f := newWorkflowFixture(t)

	f.svc.HandleInteraction(bugViewSubmission())
	f.wait(t)

	// One chat post carrying every submitted value.
	require.Len(t, f.chat.posted, 1)
	for _, want := range []string{"Login broken", "cannot sign in", "successful login", "error 500"} {
		assert.Contains(t, f.chat.posted[0], want)
	}

	// One issue create with the mapped issue type.
	require.Len(t, f.tracker.created, 1)
	assert.Equal(t, "Bug", f.tracker.created[0].IssueType)
	assert.Equal(t, "SUP", f.tracker.created[0].ProjectKey)

	// Exactly one correlation write, both-directional by contract.
	assert.Equal(t, 1, f.correlations.linkCalls)
	assert.Equal(t, "SUP-42", f.correlations.linked["T1,C1,100.5"])

	// Join-dependent steps ran: issue URL on the thread, permalink on the issue.
	require.Len(t, f.chat.threadPosts, 1)
	assert.Equal(t, "https://jira.example.com/browse/SUP-42", f.chat.threadPosts[0])
	require.Len(t, f.tracker.remoteLinks, 1)
	assert.Equal(t, "https://acme.slack.com/archives/C1/p1005", f.tracker.remoteLinks[0])
}

func TestChatPostFailureSkipsAllLinkSteps(t *testing.T) {
	f := newWorkflowFixture(t)
	f.chat.postErr = errors.New("slack down")

	f.svc.HandleInteraction(bugViewSubmission())
	f.wait(t)

	assert.Equal(t, 0, f.correlations.linkCalls)
	assert.Empty(t, f.chat.threadPosts)
	assert.Empty(t, f.tracker.remoteLinks)
	assert.NotZero(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestCreateIssueFailureSkipsAllLinkSteps(t *testing.T) {
	f := newWorkflowFixture(t)
	f.tracker.createErr = errors.New("jira down")

	f.svc.HandleInteraction(bugViewSubmission())
	f.wait(t)

	assert.Equal(t, 0, f.correlations.linkCalls)
	assert.Empty(t, f.chat.threadPosts)
	assert.Empty(t, f.tracker.remoteLinks)
	// The confirmation post may have succeeded; the pair stays half-complete
	// and silent by design.
	assert.Len(t, f.chat.posted, 1)
}

func TestDialogSubmissionBypassesNormalization(t *testing.T) {
	f := newWorkflowFixture(t)

	f.svc.HandleInteraction(domain.Interaction{
		Kind: domain.KindDialogSubmission,
		Context: domain.RequestContext{
			TeamID:    "T1",
			User:      domain.UserRef{ID: "U1", Name: "jane"},
			ChannelID: "C1",
		},
		Dialog: &domain.DialogSubmission{
			CallbackID: "product_idea",
			Values:     map[string]string{"title": "Dark mode", "description": "please"},
		},
	})
	f.wait(t)

	require.Len(t, f.tracker.created, 1)
	assert.Equal(t, "Story", f.tracker.created[0].IssueType)
	assert.Equal(t, "Dark mode", f.tracker.created[0].Summary)
	assert.Equal(t, 1, f.correlations.linkCalls)
}

func TestUnknownInteractionTypeLogsOnceAndDoesNothing(t *testing.T) {
	f := newWorkflowFixture(t)

	f.svc.HandleInteraction(domain.Interaction{
		Kind:         domain.KindUnrecognized,
		Unrecognized: &domain.UnrecognizedPayload{Type: "some_interaction"},
	})
	f.wait(t)

	errorLogs := f.logs.FilterLevelExact(zapcore.ErrorLevel)
	require.Equal(t, 1, errorLogs.Len())
	assert.Contains(t, errorLogs.All()[0].Message, "some_interaction")

	assert.Empty(t, f.chat.posted)
	assert.Empty(t, f.tracker.created)
	assert.Equal(t, 0, f.correlations.linkCalls)
}

func TestUnknownDomainLogsDiscriminatorAndAcksQuietly(t *testing.T) {
	f := newWorkflowFixture(t)

	interaction := bugViewSubmission()
	interaction.View.CallbackID = "billing_refund"

	f.svc.HandleInteraction(interaction)
	f.wait(t)

	errorLogs := f.logs.FilterLevelExact(zapcore.ErrorLevel)
	require.Equal(t, 1, errorLogs.Len())
	entry := errorLogs.All()[0]
	assert.Contains(t, fmt.Sprint(entry.ContextMap()["error"]), "billing_refund")

	assert.Empty(t, f.chat.posted)
	assert.Empty(t, f.tracker.created)
}

func TestNormalizationFailureIsFatalForSubmission(t *testing.T) {
	f := newWorkflowFixture(t)

	interaction := bugViewSubmission()
	interaction.View.State.Values["dp_due"] = map[string]slack.BlockAction{
		"dp_due": {Type: "datepicker", Value: "2026-01-01"},
	}

	f.svc.HandleInteraction(interaction)
	f.wait(t)

	assert.Empty(t, f.chat.posted)
	assert.Empty(t, f.tracker.created)
	assert.Equal(t, 0, f.correlations.linkCalls)
	assert.NotZero(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSlashCommandOpensModalWithChannelStashed(t *testing.T) {
	f := newWorkflowFixture(t)

	f.svc.HandleInteraction(domain.Interaction{
		Kind: domain.KindSlashCommand,
		Context: domain.RequestContext{
			TeamID:    "T1",
			User:      domain.UserRef{ID: "U1"},
			ChannelID: "C7",
			TriggerID: "tr1",
		},
		Command: &domain.SlashCommand{Command: "/support", Text: "bug"},
	})
	f.wait(t)

	require.Len(t, f.chat.openedViews, 1)
	assert.Equal(t, "support_bug", f.chat.openedViews[0].CallbackID)
	assert.Equal(t, "C7", f.chat.openedViews[0].PrivateMetadata)
}

func TestShortcutOpensModal(t *testing.T) {
	f := newWorkflowFixture(t)

	f.svc.HandleInteraction(domain.Interaction{
		Kind:     domain.KindShortcut,
		Context:  domain.RequestContext{TriggerID: "tr2", ChannelID: "C3"},
		Shortcut: &domain.ShortcutInvocation{CallbackID: "product_improvement"},
	})
	f.wait(t)

	require.Len(t, f.chat.openedViews, 1)
	assert.Equal(t, "product_improvement", f.chat.openedViews[0].CallbackID)
}

func TestBlockActionHasNoSideEffects(t *testing.T) {
	f := newWorkflowFixture(t)

	f.svc.HandleInteraction(domain.Interaction{Kind: domain.KindBlockAction})
	f.wait(t)

	assert.Empty(t, f.chat.posted)
	assert.Empty(t, f.chat.openedViews)
	assert.Empty(t, f.tracker.created)
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestFileShareEventAppendsComment(t *testing.T) {
	f := newWorkflowFixture(t)
	f.correlations.resolveIssue = "SUP-42"
	f.chat.userName = "Jane Doe"

	f.svc.HandleInteraction(domain.Interaction{
		Kind: domain.KindEventCallback,
		Event: &domain.ChannelEvent{
			TeamID:          "T1",
			Channel:         "C1",
			User:            "U1",
			Text:            "attaching the log",
			Timestamp:       "200.1",
			ThreadTimestamp: "100.5",
			SubType:         "file_share",
			FileIDs:         nil,
		},
	})
	f.wait(t)

	require.Len(t, f.tracker.comments, 1)
	assert.Contains(t, f.tracker.comments[0], "Jane Doe: attaching the log")
}

func TestNonFileShareEventIsIgnored(t *testing.T) {
	f := newWorkflowFixture(t)
	f.correlations.resolveIssue = "SUP-42"

	f.svc.HandleInteraction(domain.Interaction{
		Kind: domain.KindEventCallback,
		Event: &domain.ChannelEvent{
			TeamID:  "T1",
			Channel: "C1",
			SubType: "channel_join",
		},
	})
	f.wait(t)

	assert.Empty(t, f.tracker.comments)
}
