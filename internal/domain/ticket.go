package domain

// SummaryMaxLen is the tracker's effective summary length cap, in runes.
// The flows package overflows longer titles into the description.
const SummaryMaxLen = 128

// TicketParams is everything the tracker needs to create one issue.
type TicketParams struct {
	ProjectKey  string
	IssueType   string
	Summary     string
	Description string
	Labels      []string
	Components  []string
}

// CreatedIssue is the tracker's answer to a successful create.
type CreatedIssue struct {
	ID   string
	Key  string
	Self string
}

// ChatMessageRef locates one chat message precisely enough to build a
// permalink and derive a correlation key.
type ChatMessageRef struct {
	Channel    string
	Timestamp  string
	TeamDomain string
}
