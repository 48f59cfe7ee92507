package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/issue-bridge/internal/chat"
	"github.com/spec-kit/issue-bridge/internal/domain"
	"github.com/spec-kit/issue-bridge/internal/events"
	"github.com/spec-kit/issue-bridge/internal/flows"
	"github.com/spec-kit/issue-bridge/internal/jira"
	"github.com/spec-kit/issue-bridge/internal/observability"
	"github.com/spec-kit/issue-bridge/internal/repository"
	"github.com/spec-kit/issue-bridge/internal/worker"
	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
)

// WorkflowService routes classified interactions to their flows and runs the
// create-and-link side effects as detached continuations. Every path through
// HandleInteraction returns without error: the HTTP acknowledgment never
// depends on downstream outcome.
type WorkflowService struct {
	registry     *flows.Registry
	chat         chat.Client
	tracker      jira.Tracker
	correlations repository.CorrelationRepository
	eventSvc     *EventService
	runner       *worker.Runner
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	issueBaseURL string
}

// WorkflowDependencies bundles collaborators for the workflow service.
type WorkflowDependencies struct {
	Registry     *flows.Registry
	Chat         chat.Client
	Tracker      jira.Tracker
	Correlations repository.CorrelationRepository
	EventService *EventService
	Runner       *worker.Runner
	Dispatcher   events.Dispatcher
	Metrics      *observability.Metrics
	Logger       *zap.Logger
	IssueBaseURL string
}

// NewWorkflowService constructs the service.
func NewWorkflowService(deps WorkflowDependencies) *WorkflowService {
	return &WorkflowService{
		registry:     deps.Registry,
		chat:         deps.Chat,
		tracker:      deps.Tracker,
		correlations: deps.Correlations,
		eventSvc:     deps.EventService,
		runner:       deps.Runner,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		issueBaseURL: deps.IssueBaseURL,
	}
}

// HandleInteraction dispatches one classified interaction. Side-effect work
// is spawned on the runner; classification, routing and normalization
// failures are logged here and converted to no-ops.
func (s *WorkflowService) HandleInteraction(interaction domain.Interaction) {
	switch interaction.Kind {
	case domain.KindSlashCommand:
		s.openForm(interaction.Context, interaction.Command.Discriminator())
	case domain.KindShortcut:
		s.openForm(interaction.Context, interaction.Shortcut.CallbackID)
	case domain.KindViewSubmission:
		s.handleViewSubmission(interaction.Context, interaction.View)
	case domain.KindDialogSubmission:
		s.handleDialogSubmission(interaction.Context, interaction.Dialog)
	case domain.KindEventCallback:
		s.handleEventCallback(interaction.Event)
	case domain.KindBlockAction:
		// In-view interactivity pings carry no submission; acknowledge only.
		s.logger.Debug("ignoring block action",
			zap.String("user_id", interaction.Context.User.ID))
	case domain.KindUnrecognized:
		s.rejectUnrecognized(interaction.Unrecognized)
	}
}

func (s *WorkflowService) rejectUnrecognized(payload *domain.UnrecognizedPayload) {
	if payload.ParseError {
		s.logger.Error("failed to parse interaction payload")
		s.metrics.RecordError("classify", "webhook", "CLASSIFICATION_FAILED")
		s.publishRejected("CLASSIFICATION_FAILED", "parse error")
		return
	}
	s.logger.Error("unrecognized interaction type "+payload.Type,
		zap.String("interaction_type", payload.Type))
	s.metrics.RecordError("classify", "webhook", "UNKNOWN_VARIANT")
	s.publishRejected("UNKNOWN_VARIANT", payload.Type)
}

// openForm resolves the flow for a discriminator and opens its modal. The
// trigger id expires quickly, so the open itself runs detached.
func (s *WorkflowService) openForm(rctx domain.RequestContext, discriminator string) {
	flow, requestType, err := s.registry.Route(discriminator)
	if err != nil {
		s.logRoutingFailure(err)
		return
	}
	view, err := flow.View(requestType)
	if err != nil {
		s.logRoutingFailure(err)
		return
	}
	// The modal carries no channel on the way back; stash it for submission.
	view.PrivateMetadata = rctx.ChannelID

	triggerID := rctx.TriggerID
	s.runner.Go("openModalView", func(ctx context.Context) error {
		if err := s.chat.OpenView(ctx, triggerID, view); err != nil {
			return apperrors.NewExternalServiceError("openModalView", err)
		}
		return nil
	})

	s.publish(events.EventFormOpened, events.FormOpenedPayload{
		Domain:      flow.Domain(),
		RequestType: requestType,
		UserID:      rctx.User.ID,
	})
}

func (s *WorkflowService) handleViewSubmission(rctx domain.RequestContext, view *domain.ViewSubmission) {
	flow, requestType, err := s.registry.Route(view.CallbackID)
	if err != nil {
		s.logRoutingFailure(err)
		return
	}
	sub, err := flow.ViewToSubmission(view.State)
	if err != nil {
		s.logger.Error("submission normalization failed",
			zap.String("callback_id", view.CallbackID),
			zap.Error(err))
		s.metrics.RecordError("normalize", "webhook", apperrors.CodeOf(err))
		return
	}
	s.runSubmission(flow, requestType, rctx, sub)
}

func (s *WorkflowService) handleDialogSubmission(rctx domain.RequestContext, dialog *domain.DialogSubmission) {
	flow, requestType, err := s.registry.Route(dialog.CallbackID)
	if err != nil {
		s.logRoutingFailure(err)
		return
	}
	// Dialog values are already flat key→value; no normalization applies.
	s.runSubmission(flow, requestType, rctx, domain.FromFlat(dialog.Values))
}

func (s *WorkflowService) handleEventCallback(ev *domain.ChannelEvent) {
	if ev == nil || !ev.IsThreadFileShare() {
		return
	}
	event := *ev
	s.runner.Go("appendFileShareComment", func(ctx context.Context) error {
		return s.eventSvc.AppendFileShareComment(ctx, event)
	})
}

// runSubmission spawns the create-and-link chain as a detached continuation:
// the confirmation post and the issue creation are dispatched concurrently
// with no ordering dependency, and the link steps wait on both. If either
// side of the pair fails, no correlation is ever persisted.
func (s *WorkflowService) runSubmission(flow flows.Flow, requestType string, rctx domain.RequestContext, sub domain.Submission) {
	s.runner.Go("handleSubmission", func(ctx context.Context) error {
		params, err := flow.IssueParams(sub, rctx.User, requestType)
		if err != nil {
			s.logger.Error("failed to build issue params",
				zap.String("domain", flow.Domain()),
				zap.String("request_type", requestType),
				zap.Error(err))
			s.metrics.RecordError("build", "webhook", apperrors.CodeOf(err))
			return nil
		}
		text := flow.MessageText(sub)

		var (
			ref   domain.ChatMessageRef
			issue domain.CreatedIssue
		)
		// A bare group on purpose: neither operation may cancel the other.
		var g errgroup.Group
		g.Go(func() error {
			var postErr error
			ref, postErr = s.chat.PostMessage(ctx, rctx.ChannelID, text)
			if postErr != nil {
				return apperrors.NewExternalServiceError("postMessage", postErr)
			}
			return nil
		})
		g.Go(func() error {
			var createErr error
			issue, createErr = s.tracker.CreateIssue(ctx, params)
			if createErr != nil {
				return apperrors.NewExternalServiceError("createIssue", createErr)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			s.logger.Error("create/post pair incomplete, skipping link steps",
				zap.String("domain", flow.Domain()),
				zap.String("channel_id", rctx.ChannelID),
				zap.Error(err))
			s.metrics.RecordError("submit", "webhook", apperrors.CodeOf(err))
			return nil
		}

		s.linkPair(ctx, flow.Domain(), rctx.TeamID, ref, issue)
		return nil
	})
}

// linkPair runs the join-dependent steps: remote link on the issue, issue URL
// on the thread, and the single correlation write. Each step is independent
// best effort; failures are logged and the rest proceed.
func (s *WorkflowService) linkPair(ctx context.Context, flowDomain, teamID string, ref domain.ChatMessageRef, issue domain.CreatedIssue) {
	permalink := chat.Permalink(ref)
	issueURL := s.issueBaseURL + "/browse/" + issue.Key

	if err := s.tracker.AddRemoteLink(ctx, issue.Key, permalink, "Slack thread"); err != nil {
		s.logger.Error("failed to attach remote link",
			zap.String("operation", "addRemoteLink"),
			zap.String("issue_key", issue.Key),
			zap.Error(err))
	}

	if err := s.chat.PostOnThread(ctx, ref.Channel, ref.Timestamp, issueURL); err != nil {
		s.logger.Error("failed to post issue URL on thread",
			zap.String("operation", "postOnThread"),
			zap.String("channel", ref.Channel),
			zap.String("issue_key", issue.Key),
			zap.Error(err))
	}

	key := domain.NewCorrelationKey(teamID, ref.Channel, ref.Timestamp)
	if err := s.correlations.Link(ctx, key, issue); err != nil {
		s.logger.Error("failed to persist correlation",
			zap.String("operation", "link"),
			zap.String("message_key", key.String()),
			zap.String("issue_key", issue.Key),
			zap.Error(err))
		return
	}

	s.publish(events.EventIssueLinked, events.IssueLinkedPayload{
		Domain:     flowDomain,
		IssueKey:   issue.Key,
		MessageKey: key.String(),
	})
}

func (s *WorkflowService) logRoutingFailure(err error) {
	s.logger.Error("workflow routing failed", zap.Error(err))
	s.metrics.RecordError("route", "webhook", apperrors.CodeOf(err))
	s.publishRejected(apperrors.CodeOf(err), err.Error())
}

func (s *WorkflowService) publishRejected(code, detail string) {
	s.publish(events.EventInteractionRejected, events.InteractionRejectedPayload{
		Code:   code,
		Detail: detail,
	})
}

func (s *WorkflowService) publish(eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
