package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/shared"
)

type AIHandler struct {
	explainSvc ExplainServiceInterface
}

func NewAIHandler(explainSvc ExplainServiceInterface) *AIHandler {
	return &AIHandler{explainSvc: explainSvc}
}

// @Summary Explain an answer
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ExplainAnswerRequest true "Question and answers"
// @Success 200 {object} shared.Response{data=dto.ExplainAnswerResponse}
// @Failure 429 {object} shared.Response
// @Router /api/v1/ai/explain-answer [post]
func (h *AIHandler) ExplainAnswer(c *fiber.Ctx) error {
	var req dto.ExplainAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.explainSvc.ExplainAnswer(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Summarize study material
// @Tags ai
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SummarizeRequest true "Material"
// @Success 200 {object} shared.Response{data=dto.SummarizeResponse}
// @Failure 429 {object} shared.Response
// @Router /api/v1/ai/summarize [post]
func (h *AIHandler) Summarize(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.explainSvc.Summarize(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}
