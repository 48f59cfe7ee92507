package dto

// SlashCommandRequest is the body Slack posts to the command endpoint.
type SlashCommandRequest struct {
	TeamID     string `form:"team_id" json:"team_id"`
	TeamDomain string `form:"team_domain" json:"team_domain"`
	ChannelID  string `form:"channel_id" json:"channel_id"`
	UserID     string `form:"user_id" json:"user_id"`
	UserName   string `form:"user_name" json:"user_name"`
	Command    string `form:"command" json:"command"`
	Text       string `form:"text" json:"text"`
	TriggerID  string `form:"trigger_id" json:"trigger_id"`
}

// InteractionRequest carries the JSON-encoded payload field Slack posts to
// the interaction endpoint.
type InteractionRequest struct {
	Payload string `form:"payload" json:"payload"`
}
