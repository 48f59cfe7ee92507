package chat

import (
	"fmt"
	"strings"

	"github.com/spec-kit/issue-bridge/internal/domain"
)

// Permalink builds the archive URL for a message from its reference. Slack
// archive URLs carry the timestamp without its dot, prefixed with "p".
func Permalink(ref domain.ChatMessageRef) string {
	ts := strings.ReplaceAll(ref.Timestamp, ".", "")
	return fmt.Sprintf("https://%s.slack.com/archives/%s/p%s", ref.TeamDomain, ref.Channel, ts)
}
