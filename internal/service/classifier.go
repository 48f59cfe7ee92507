package service

import (
	"encoding/json"

	"github.com/slack-go/slack"

	"github.com/spec-kit/issue-bridge/internal/api/dto"
	"github.com/spec-kit/issue-bridge/internal/domain"
)

// Classifier discriminates inbound webhook payload variants into the
// Interaction tagged union. Classification is total: it never returns an
// error; shapes it cannot place degrade to a loggable unrecognized variant so
// the caller can always acknowledge.
type Classifier struct{}

// NewClassifier creates the classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// ClassifyCommand wraps a slash-command request.
func (c *Classifier) ClassifyCommand(req dto.SlashCommandRequest) domain.Interaction {
	return domain.Interaction{
		Kind: domain.KindSlashCommand,
		Context: domain.RequestContext{
			TeamID:    req.TeamID,
			User:      domain.UserRef{ID: req.UserID, Name: req.UserName},
			ChannelID: req.ChannelID,
			TriggerID: req.TriggerID,
		},
		Command: &domain.SlashCommand{Command: req.Command, Text: req.Text},
	}
}

// ClassifyInteraction parses the JSON-encoded payload string from the
// interaction endpoint and discriminates by its type field.
func (c *Classifier) ClassifyInteraction(payload string) domain.Interaction {
	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &cb); err != nil {
		return domain.Interaction{
			Kind:         domain.KindUnrecognized,
			Unrecognized: &domain.UnrecognizedPayload{ParseError: true},
		}
	}

	rctx := domain.RequestContext{
		TeamID:    cb.Team.ID,
		User:      domain.UserRef{ID: cb.User.ID, Name: cb.User.Name},
		ChannelID: cb.Channel.ID,
		TriggerID: cb.TriggerID,
	}

	switch cb.Type {
	case slack.InteractionTypeDialogSubmission:
		return domain.Interaction{
			Kind:    domain.KindDialogSubmission,
			Context: rctx,
			Dialog:  &domain.DialogSubmission{CallbackID: cb.CallbackID, Values: cb.Submission},
		}
	case slack.InteractionTypeViewSubmission:
		// Modals carry no channel; the opener stashed it in private metadata.
		if rctx.ChannelID == "" {
			rctx.ChannelID = cb.View.PrivateMetadata
		}
		return domain.Interaction{
			Kind:    domain.KindViewSubmission,
			Context: rctx,
			View:    &domain.ViewSubmission{CallbackID: cb.View.CallbackID, State: cb.View.State},
		}
	case slack.InteractionTypeShortcut, slack.InteractionTypeMessageAction:
		return domain.Interaction{
			Kind:     domain.KindShortcut,
			Context:  rctx,
			Shortcut: &domain.ShortcutInvocation{CallbackID: cb.CallbackID},
		}
	case slack.InteractionTypeBlockActions:
		return domain.Interaction{Kind: domain.KindBlockAction, Context: rctx}
	default:
		return domain.Interaction{
			Kind:         domain.KindUnrecognized,
			Context:      rctx,
			Unrecognized: &domain.UnrecognizedPayload{Type: string(cb.Type)},
		}
	}
}

type eventEnvelope struct {
	Type      string          `json:"type"`
	Challenge string          `json:"challenge"`
	TeamID    string          `json:"team_id"`
	Event     json.RawMessage `json:"event"`
}

type channelEventBody struct {
	Type            string `json:"type"`
	SubType         string `json:"subtype"`
	Channel         string `json:"channel"`
	User            string `json:"user"`
	Text            string `json:"text"`
	Timestamp       string `json:"ts"`
	ThreadTimestamp string `json:"thread_ts"`
	Files           []struct {
		ID string `json:"id"`
	} `json:"files"`
}

// ClassifyEvent discriminates the Events API envelope. A url_verification
// request returns its challenge for the handler to echo verbatim; an
// event_callback wraps the inner event together with the team id.
func (c *Classifier) ClassifyEvent(body []byte) (domain.Interaction, string) {
	var envelope eventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Interaction{
			Kind:         domain.KindUnrecognized,
			Unrecognized: &domain.UnrecognizedPayload{ParseError: true},
		}, ""
	}

	switch envelope.Type {
	case "url_verification":
		return domain.Interaction{Kind: domain.KindURLVerification}, envelope.Challenge
	case "event_callback":
		var inner channelEventBody
		if err := json.Unmarshal(envelope.Event, &inner); err != nil {
			return domain.Interaction{
				Kind:         domain.KindUnrecognized,
				Unrecognized: &domain.UnrecognizedPayload{ParseError: true},
			}, ""
		}
		fileIDs := make([]string, 0, len(inner.Files))
		for _, f := range inner.Files {
			fileIDs = append(fileIDs, f.ID)
		}
		return domain.Interaction{
			Kind: domain.KindEventCallback,
			Context: domain.RequestContext{
				TeamID:    envelope.TeamID,
				User:      domain.UserRef{ID: inner.User},
				ChannelID: inner.Channel,
			},
			Event: &domain.ChannelEvent{
				TeamID:          envelope.TeamID,
				Channel:         inner.Channel,
				User:            inner.User,
				Text:            inner.Text,
				Timestamp:       inner.Timestamp,
				ThreadTimestamp: inner.ThreadTimestamp,
				SubType:         inner.SubType,
				FileIDs:         fileIDs,
			},
		}, ""
	default:
		return domain.Interaction{
			Kind:         domain.KindUnrecognized,
			Unrecognized: &domain.UnrecognizedPayload{Type: envelope.Type},
		}, ""
	}
}
