package flows

import (
	"fmt"
	"strings"

	"github.com/spec-kit/issue-bridge/internal/domain"
	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
	"github.com/spec-kit/issue-bridge/pkg/util/slugutil"
)

// flowSpec is the per-domain table a flow is parameterized with. Template
// fields form the description body in order; every other form field is
// optional decoration that becomes labels and confirmation lines.
type flowSpec struct {
	domain      string
	staticLabel string
	projectKey  string
	commands    []string
	issueTypes  map[string]string
	fields      []formField
	template    []templateField
}

type templateField struct {
	key     string
	heading string
}

type formField struct {
	id       string // "{prefix}_{name}"; prefix selects the input element
	label    string
	optional bool
	options  []string
}

func (f formField) name() string {
	return FieldName(f.id)
}

func (f formField) prefix() string {
	if idx := strings.Index(f.id, "_"); idx >= 0 {
		return f.id[:idx]
	}
	return ""
}

// splitSummary caps the title at the tracker's summary limit. For longer
// titles it returns the first SummaryMaxLen runes and the remainder with its
// final rune dropped; the remainder is prepended to the description.
func splitSummary(title string) (summary, overflow string) {
	runes := []rune(title)
	if len(runes) <= domain.SummaryMaxLen {
		return title, ""
	}
	summary = string(runes[:domain.SummaryMaxLen])
	overflow = string(runes[domain.SummaryMaxLen : len(runes)-1])
	return summary, overflow
}

// buildParams turns a normalized submission into tracker-issue parameters per
// the flow's tables.
func buildParams(spec flowSpec, sub domain.Submission, user domain.UserRef, requestType string) (domain.TicketParams, error) {
	issueType, ok := spec.issueTypes[requestType]
	if !ok {
		return domain.TicketParams{}, apperrors.NewUnknownVariant(spec.domain + "_" + requestType)
	}

	summary, overflow := splitSummary(sub.Text("title"))

	var desc strings.Builder
	if overflow != "" {
		desc.WriteString(overflow)
		desc.WriteString("\n\n")
	}
	for _, tf := range spec.template {
		if !sub.Has(tf.key) {
			continue
		}
		value := sub.Text(tf.key)
		if value == "" {
			continue
		}
		fmt.Fprintf(&desc, "*%s*\n%s\n\n", tf.heading, value)
	}
	fmt.Fprintf(&desc, "Submitted by: %s", user.Name)

	templateKeys := make(map[string]bool, len(spec.template))
	for _, tf := range spec.template {
		templateKeys[tf.key] = true
	}

	// Only optional fields outside the description template become labels;
	// template answers are free text and already live in the body.
	labels := []string{spec.staticLabel}
	var components []string
	for _, field := range spec.fields {
		name := field.name()
		if !field.optional || templateKeys[name] || !sub.Has(name) {
			continue
		}
		if name == "components" {
			components = append(components, sub[name].Items...)
			continue
		}
		if slug := slugutil.Slugify(sub.Text(name)); slug != "" {
			labels = append(labels, slug)
		}
	}

	return domain.TicketParams{
		ProjectKey:  spec.projectKey,
		IssueType:   issueType,
		Summary:     summary,
		Description: desc.String(),
		Labels:      labels,
		Components:  components,
	}, nil
}

// messageText renders the chat confirmation: one "*Label*: value" line per
// present field in form order. Absent fields are omitted entirely; the output
// never contains a literal placeholder for a missing value.
func messageText(spec flowSpec, sub domain.Submission) string {
	var b strings.Builder
	for _, field := range spec.fields {
		name := field.name()
		if !sub.Has(name) {
			continue
		}
		value := sub.Text(name)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "*%s*: %s\n", field.label, value)
	}
	return strings.TrimRight(b.String(), "\n")
}
