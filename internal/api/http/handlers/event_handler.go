package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-bridge/internal/domain"
	"github.com/spec-kit/issue-bridge/internal/service"
)

// EventHandler receives Events API webhooks.
type EventHandler struct {
	classifier *service.Classifier
	workflow   *service.WorkflowService
}

// NewEventHandler constructs handler.
func NewEventHandler(classifier *service.Classifier, workflow *service.WorkflowService) *EventHandler {
	return &EventHandler{classifier: classifier, workflow: workflow}
}

// Handle POST /slack/events. url_verification echoes the challenge verbatim,
// empty included; everything else is acknowledged with a 200 and processed
// detached.
func (h *EventHandler) Handle(c *fiber.Ctx) error {
	interaction, challenge := h.classifier.ClassifyEvent(c.Body())
	if interaction.Kind == domain.KindURLVerification {
		return c.SendString(challenge)
	}

	h.workflow.HandleInteraction(interaction)

	return c.SendStatus(fiber.StatusOK)
}
