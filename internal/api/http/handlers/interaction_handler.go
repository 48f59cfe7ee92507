package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-bridge/internal/api/dto"
	"github.com/spec-kit/issue-bridge/internal/service"
	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
)

// InteractionHandler receives interactive payload webhooks: dialog and view
// submissions, shortcuts and block actions.
type InteractionHandler struct {
	classifier *service.Classifier
	workflow   *service.WorkflowService
}

// NewInteractionHandler constructs handler.
func NewInteractionHandler(classifier *service.Classifier, workflow *service.WorkflowService) *InteractionHandler {
	return &InteractionHandler{classifier: classifier, workflow: workflow}
}

// Handle POST /slack/interaction. The body carries a JSON-encoded payload
// field; everything past that point degrades to a loggable no-op, never a
// non-200 response.
func (h *InteractionHandler) Handle(c *fiber.Ctx) error {
	var req dto.InteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewClassificationError("invalid interaction payload", err)
	}

	interaction := h.classifier.ClassifyInteraction(req.Payload)
	h.workflow.HandleInteraction(interaction)

	return c.SendStatus(fiber.StatusOK)
}
