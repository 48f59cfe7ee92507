package chat

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/spec-kit/issue-bridge/internal/config"
	"github.com/spec-kit/issue-bridge/internal/domain"
)

// Client is the chat collaborator surface the flows depend on. Implementations
// must be safe for concurrent use by detached continuations.
type Client interface {
	PostMessage(ctx context.Context, channelID, text string) (domain.ChatMessageRef, error)
	PostOnThread(ctx context.Context, channelID, threadTS, text string) error
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	FetchUserName(ctx context.Context, userID string) (string, error)
	FetchFileInfo(ctx context.Context, fileID string) (*slack.File, error)
}

type slackClient struct {
	api        *slack.Client
	teamDomain string
}

// NewSlackClient builds the production client from config.
func NewSlackClient(cfg config.SlackConfig) Client {
	return &slackClient{
		api:        slack.New(cfg.BotToken),
		teamDomain: cfg.TeamDomain,
	}
}

func (c *slackClient) PostMessage(ctx context.Context, channelID, text string) (domain.ChatMessageRef, error) {
	channel, ts, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return domain.ChatMessageRef{}, fmt.Errorf("postMessage: %w", err)
	}
	return domain.ChatMessageRef{Channel: channel, Timestamp: ts, TeamDomain: c.teamDomain}, nil
}

func (c *slackClient) PostOnThread(ctx context.Context, channelID, threadTS, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS))
	if err != nil {
		return fmt.Errorf("postOnThread: %w", err)
	}
	return nil
}

func (c *slackClient) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("openView: %w", err)
	}
	return nil
}

func (c *slackClient) FetchUserName(ctx context.Context, userID string) (string, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetchUserName: %w", err)
	}
	if user.Profile.DisplayName != "" {
		return user.Profile.DisplayName, nil
	}
	if user.RealName != "" {
		return user.RealName, nil
	}
	return user.Name, nil
}

func (c *slackClient) FetchFileInfo(ctx context.Context, fileID string) (*slack.File, error) {
	file, _, _, err := c.api.GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("fetchFileInfo: %w", err)
	}
	return file, nil
}
