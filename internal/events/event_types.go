package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFormOpened          EventType = "form_opened"
	EventIssueLinked         EventType = "issue_linked"
	EventCommentAppended     EventType = "comment_appended"
	EventInteractionRejected EventType = "interaction_rejected"
)

// Event represents a bridge event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FormOpenedPayload payload.
type FormOpenedPayload struct {
	Domain      string `json:"domain"`
	RequestType string `json:"request_type"`
	UserID      string `json:"user_id"`
}

// IssueLinkedPayload payload.
type IssueLinkedPayload struct {
	Domain     string `json:"domain"`
	IssueKey   string `json:"issue_key"`
	MessageKey string `json:"message_key"`
}

// CommentAppendedPayload payload.
type CommentAppendedPayload struct {
	IssueKey  string `json:"issue_key"`
	Channel   string `json:"channel"`
	ThreadTS  string `json:"thread_ts"`
	FileCount int    `json:"file_count"`
}

// InteractionRejectedPayload payload.
type InteractionRejectedPayload struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}
