package domain

import "strings"

// CorrelationKey binds one chat thread message to one tracker issue. Its
// string form is the storage key: "{teamID},{channelID},{messageTS}".
type CorrelationKey struct {
	TeamID    string
	ChannelID string
	MessageTS string
}

// NewCorrelationKey builds a key from its parts.
func NewCorrelationKey(teamID, channelID, messageTS string) CorrelationKey {
	return CorrelationKey{TeamID: teamID, ChannelID: channelID, MessageTS: messageTS}
}

func (k CorrelationKey) String() string {
	return k.TeamID + "," + k.ChannelID + "," + k.MessageTS
}

// EffectiveIssueKey extracts the issue key from a stored correlation value.
// Values may be comma-joined composites ("{issueID},{issueKey}"); only the
// segment after the last comma is the issue key.
func EffectiveIssueKey(stored string) string {
	if idx := strings.LastIndex(stored, ","); idx >= 0 {
		return stored[idx+1:]
	}
	return stored
}
