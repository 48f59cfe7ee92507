package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/spec-kit/issue-bridge/internal/chat"
	"github.com/spec-kit/issue-bridge/internal/domain"
	"github.com/spec-kit/issue-bridge/internal/events"
	"github.com/spec-kit/issue-bridge/internal/jira"
	"github.com/spec-kit/issue-bridge/internal/repository"
)

// EventService consumes channel-thread file-share events, resolves the linked
// tracker issue and appends a comment describing the shared files. Every
// failure here is logged and swallowed; nothing propagates to the HTTP layer.
type EventService struct {
	chat         chat.Client
	tracker      jira.Tracker
	correlations repository.CorrelationRepository
	dispatcher   events.Dispatcher
	teamDomain   string
	logger       *zap.Logger
}

// EventDependencies bundles collaborators for the event service.
type EventDependencies struct {
	Chat         chat.Client
	Tracker      jira.Tracker
	Correlations repository.CorrelationRepository
	Dispatcher   events.Dispatcher
	TeamDomain   string
	Logger       *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	return &EventService{
		chat:         deps.Chat,
		tracker:      deps.Tracker,
		correlations: deps.Correlations,
		dispatcher:   deps.Dispatcher,
		teamDomain:   deps.TeamDomain,
		logger:       deps.Logger,
	}
}

// AppendFileShareComment runs the full append flow for one file-share event.
func (s *EventService) AppendFileShareComment(ctx context.Context, ev domain.ChannelEvent) error {
	issueKey, err := s.correlations.ResolveIssueForMessage(ctx, ev.TeamID, ev.Channel, ev.ThreadTimestamp)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Error("Issue key not found",
			zap.String("team_id", ev.TeamID),
			zap.String("channel", ev.Channel),
			zap.String("thread_ts", ev.ThreadTimestamp))
		return nil
	}
	if err != nil {
		s.logger.Error("correlation lookup failed",
			zap.String("operation", "resolveIssueForMessage"),
			zap.String("channel", ev.Channel),
			zap.String("thread_ts", ev.ThreadTimestamp),
			zap.Error(err))
		return nil
	}

	name := s.displayName(ctx, ev.User)
	fileLines := s.describeFiles(ctx, ev.FileIDs)
	permalink := chat.Permalink(domain.ChatMessageRef{
		Channel:    ev.Channel,
		Timestamp:  ev.Timestamp,
		TeamDomain: s.teamDomain,
	})

	body := fmt.Sprintf("%s: %s\n\n%s\n\n%s", name, ev.Text, strings.Join(fileLines, "\n"), permalink)
	if err := s.tracker.AddComment(ctx, issueKey, body); err != nil {
		s.logger.Error("failed to append tracker comment",
			zap.String("operation", "addComment"),
			zap.String("issue_key", issueKey),
			zap.Error(err))
		return nil
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommentAppended,
			Timestamp: time.Now(),
			Payload: events.CommentAppendedPayload{
				IssueKey:  issueKey,
				Channel:   ev.Channel,
				ThreadTS:  ev.ThreadTimestamp,
				FileCount: len(ev.FileIDs),
			},
		})
	}
	return nil
}

// displayName resolves a human name for the user, falling back to the raw
// identifier. Best effort only; never blocks the flow.
func (s *EventService) displayName(ctx context.Context, userID string) string {
	name, err := s.chat.FetchUserName(ctx, userID)
	if err != nil {
		s.logger.Debug("falling back to raw user id",
			zap.String("operation", "fetchUserName"),
			zap.String("user_id", userID),
			zap.Error(err))
		return userID
	}
	return name
}

func (s *EventService) describeFiles(ctx context.Context, fileIDs []string) []string {
	lines := make([]string, 0, len(fileIDs))
	for _, id := range fileIDs {
		file, err := s.chat.FetchFileInfo(ctx, id)
		if err != nil {
			s.logger.Warn("skipping file without info",
				zap.String("operation", "fetchFileInfo"),
				zap.String("file_id", id),
				zap.Error(err))
			continue
		}
		lines = append(lines, describeFile(file))
	}
	return lines
}

// describeFile renders one shared file. Files exposing a thumbnail get the
// image treatment: name, preview and both download and view links. Inline
// image embedding is deliberately not attempted; the tracker's editor does
// not reliably render externally hosted images.
func describeFile(file *slack.File) string {
	if file.Thumb360 != "" {
		return fmt.Sprintf("%s (preview: %s)\n[Download|%s] | [View in Slack|%s]",
			file.Name, file.Thumb360, file.URLPrivateDownload, file.Permalink)
	}
	return fmt.Sprintf("[%s|%s]", file.Name, file.URLPrivate)
}
