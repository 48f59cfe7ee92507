package flows

import (
	"github.com/slack-go/slack"

	"github.com/spec-kit/issue-bridge/internal/domain"
)

// baseFlow carries the shared capability set; concrete flows supply only
// their spec tables.
type baseFlow struct {
	spec  flowSpec
	title string
}

func (f baseFlow) Domain() string {
	return f.spec.domain
}

func (f baseFlow) Commands() []string {
	return f.spec.commands
}

func (f baseFlow) View(requestType string) (slack.ModalViewRequest, error) {
	return buildView(f.spec, f.title, requestType)
}

func (f baseFlow) ViewToSubmission(state *slack.ViewState) (domain.Submission, error) {
	return ViewStateToSubmission(state)
}

func (f baseFlow) IssueParams(sub domain.Submission, user domain.UserRef, requestType string) (domain.TicketParams, error) {
	return buildParams(f.spec, sub, user, requestType)
}

func (f baseFlow) MessageText(sub domain.Submission) string {
	return messageText(f.spec, sub)
}
