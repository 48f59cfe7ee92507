package domain

import "github.com/slack-go/slack"

// InteractionKind discriminates the inbound payload variants the bridge
// understands. Classification is total: anything the classifier cannot place
// becomes KindUnrecognized, never an error.
type InteractionKind string

const (
	KindSlashCommand     InteractionKind = "slash_command"
	KindDialogSubmission InteractionKind = "dialog_submission"
	KindViewSubmission   InteractionKind = "view_submission"
	KindShortcut         InteractionKind = "shortcut"
	KindBlockAction      InteractionKind = "block_actions"
	KindEventCallback    InteractionKind = "event_callback"
	KindURLVerification  InteractionKind = "url_verification"
	KindUnrecognized     InteractionKind = "unrecognized"
)

// RequestContext carries the request-scoped identity fields every flow needs.
type RequestContext struct {
	TeamID    string
	User      UserRef
	ChannelID string
	TriggerID string
}

// UserRef identifies the acting chat user.
type UserRef struct {
	ID   string
	Name string
}

// Interaction is the tagged union produced by classification. Exactly one of
// the variant fields below is populated, selected by Kind.
type Interaction struct {
	Kind    InteractionKind
	Context RequestContext

	Command      *SlashCommand
	Dialog       *DialogSubmission
	View         *ViewSubmission
	Shortcut     *ShortcutInvocation
	Event        *ChannelEvent
	Unrecognized *UnrecognizedPayload
}

// SlashCommand is a user-typed command, e.g. "/support bug".
type SlashCommand struct {
	Command string
	Text    string
}

// Discriminator derives the "{domain}_{subtype}" routing string from the
// command name and its first argument.
func (c SlashCommand) Discriminator() string {
	domain := c.Command
	if len(domain) > 0 && domain[0] == '/' {
		domain = domain[1:]
	}
	subtype := c.Text
	for i := 0; i < len(subtype); i++ {
		if subtype[i] == ' ' {
			subtype = subtype[:i]
			break
		}
	}
	if subtype == "" {
		return domain
	}
	return domain + "_" + subtype
}

// DialogSubmission is legacy flat key→value form data; it bypasses block-kit
// normalization entirely.
type DialogSubmission struct {
	CallbackID string
	Values     map[string]string
}

// ViewSubmission carries raw modal state awaiting normalization.
type ViewSubmission struct {
	CallbackID string
	State      *slack.ViewState
}

// ShortcutInvocation is a global or message shortcut; its callback id is the
// routing discriminator.
type ShortcutInvocation struct {
	CallbackID string
}

// ChannelEvent wraps an Events API callback relevant to the bridge: a message
// posted on a channel thread, possibly sharing files.
type ChannelEvent struct {
	TeamID          string
	Channel         string
	User            string
	Text            string
	Timestamp       string
	ThreadTimestamp string
	SubType         string
	FileIDs         []string
}

// IsThreadFileShare reports whether the event is a file share on an existing
// thread, the only event kind the comment appender consumes.
func (e ChannelEvent) IsThreadFileShare() bool {
	return e.SubType == "file_share" && e.ThreadTimestamp != ""
}

// UnrecognizedPayload records why classification degraded so the caller can
// log it and still acknowledge.
type UnrecognizedPayload struct {
	Type       string
	ParseError bool
}
