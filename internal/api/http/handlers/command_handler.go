package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-bridge/internal/api/dto"
	"github.com/spec-kit/issue-bridge/internal/service"
	apperrors "github.com/spec-kit/issue-bridge/pkg/util/errorutil"
)

// CommandHandler receives slash-command webhooks.
type CommandHandler struct {
	classifier *service.Classifier
	workflow   *service.WorkflowService
}

// NewCommandHandler constructs handler.
func NewCommandHandler(classifier *service.Classifier, workflow *service.WorkflowService) *CommandHandler {
	return &CommandHandler{classifier: classifier, workflow: workflow}
}

// Handle POST /slack/command. Once the body parses, the platform gets a 200
// regardless of downstream outcome so it never retries and duplicates work.
func (h *CommandHandler) Handle(c *fiber.Ctx) error {
	var req dto.SlashCommandRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewClassificationError("invalid command payload", err)
	}

	interaction := h.classifier.ClassifyCommand(req)
	h.workflow.HandleInteraction(interaction)

	return c.SendStatus(fiber.StatusOK)
}
