package service

import (
	"context"
	"sync"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/issue-bridge/internal/domain"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

type fakeChat struct {
	mu sync.Mutex

	postErr    error
	posted     []string
	postedTo   []string
	messageRef domain.ChatMessageRef

	threadErr   error
	threadPosts []string

	openErr     error
	openedViews []slack.ModalViewRequest

	userName string
	userErr  error

	files   map[string]*slack.File
	fileErr error
}

func (f *fakeChat) PostMessage(ctx context.Context, channelID, text string) (domain.ChatMessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return domain.ChatMessageRef{}, f.postErr
	}
	f.posted = append(f.posted, text)
	f.postedTo = append(f.postedTo, channelID)
	ref := f.messageRef
	if ref.Channel == "" {
		ref.Channel = channelID
	}
	return ref, nil
}

func (f *fakeChat) PostOnThread(ctx context.Context, channelID, threadTS, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.threadErr != nil {
		return f.threadErr
	}
	f.threadPosts = append(f.threadPosts, text)
	return nil
}

func (f *fakeChat) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return f.openErr
	}
	f.openedViews = append(f.openedViews, view)
	return nil
}

func (f *fakeChat) FetchUserName(ctx context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return "", f.userErr
	}
	return f.userName, nil
}

func (f *fakeChat) FetchFileInfo(ctx context.Context, fileID string) (*slack.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fileErr != nil {
		return nil, f.fileErr
	}
	return f.files[fileID], nil
}

type fakeTracker struct {
	mu sync.Mutex

	createErr error
	created   []domain.TicketParams
	issue     domain.CreatedIssue

	remoteErr   error
	remoteLinks []string

	commentErr error
	comments   []string
}

func (f *fakeTracker) CreateIssue(ctx context.Context, params domain.TicketParams) (domain.CreatedIssue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.CreatedIssue{}, f.createErr
	}
	f.created = append(f.created, params)
	return f.issue, nil
}

func (f *fakeTracker) AddRemoteLink(ctx context.Context, issueKey, url, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.remoteErr != nil {
		return f.remoteErr
	}
	f.remoteLinks = append(f.remoteLinks, url)
	return nil
}

func (f *fakeTracker) AddComment(ctx context.Context, issueKey, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.commentErr != nil {
		return f.commentErr
	}
	f.comments = append(f.comments, body)
	return nil
}

type fakeCorrelations struct {
	mu sync.Mutex

	linkErr   error
	linkCalls int
	linked    map[string]string

	resolveIssue string
	resolveErr   error
}

func (f *fakeCorrelations) Link(ctx context.Context, key domain.CorrelationKey, issue domain.CreatedIssue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.linkCalls++
	if f.linkErr != nil {
		return f.linkErr
	}
	if f.linked == nil {
		f.linked = make(map[string]string)
	}
	f.linked[key.String()] = issue.Key
	return nil
}

func (f *fakeCorrelations) ResolveIssueForMessage(ctx context.Context, teamID, channelID, threadTS string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.resolveIssue, nil
}

func (f *fakeCorrelations) ResolveMessageForIssue(ctx context.Context, issueKey string) (domain.CorrelationKey, error) {
	return domain.CorrelationKey{}, nil
}
