package flows

import (
	"strings"

	"github.com/slack-go/slack"

	"github.com/spec-kit/issue-bridge/internal/domain"
	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
)

// Flow is the capability set every workflow domain implements: which slash
// commands it serves, how a form looks, how raw view state becomes a
// submission, and how a submission becomes tracker-issue parameters plus a
// chat confirmation message.
type Flow interface {
	Domain() string
	Commands() []string
	View(requestType string) (slack.ModalViewRequest, error)
	ViewToSubmission(state *slack.ViewState) (domain.Submission, error)
	IssueParams(sub domain.Submission, user domain.UserRef, requestType string) (domain.TicketParams, error)
	MessageText(sub domain.Submission) string
}

// Registry routes composite "{domain}_{subtype}" discriminators to flows.
type Registry struct {
	flows map[string]Flow
}

// NewRegistry indexes the given flows by domain name.
func NewRegistry(flows ...Flow) *Registry {
	r := &Registry{flows: make(map[string]Flow, len(flows))}
	for _, f := range flows {
		r.flows[f.Domain()] = f
	}
	return r
}

// Route splits the discriminator on its first underscore and resolves the
// domain part. An unknown domain yields an error naming the literal
// discriminator value; the caller logs it and still acknowledges.
func (r *Registry) Route(discriminator string) (Flow, string, error) {
	name := discriminator
	subtype := ""
	if idx := strings.Index(discriminator, "_"); idx >= 0 {
		name = discriminator[:idx]
		subtype = discriminator[idx+1:]
	}
	flow, ok := r.flows[name]
	if !ok {
		return nil, "", apperrors.NewUnknownDomain(discriminator)
	}
	return flow, subtype, nil
}

// Domains lists the registered domain names, for startup logging.
func (r *Registry) Domains() []string {
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	return names
}
