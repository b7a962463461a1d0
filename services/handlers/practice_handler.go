package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/shared"
)

// PracticeHandler serves drill answers and mock rounds.
type PracticeHandler struct {
	progressSvc ProgressServiceInterface
	attemptSvc  AttemptServiceInterface
}

func NewPracticeHandler(progressSvc ProgressServiceInterface, attemptSvc AttemptServiceInterface) *PracticeHandler {
	return &PracticeHandler{
		progressSvc: progressSvc,
		attemptSvc:  attemptSvc,
	}
}

// @Summary Answer a drill question
// @Description A correct answer earns XP, updates the streak and completes today's campaign day
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param request body dto.DrillAnswerRequest true "Answer"
// @Success 200 {object} shared.Response{data=dto.DrillAnswerResponse}
// @Router /api/v1/drills/answer [post]
func (h *PracticeHandler) AnswerDrill(c *fiber.Ctx) error {
	var req dto.DrillAnswerRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.progressSvc.AnswerDrill(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Submit a mock round result
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param request body dto.MockResultRequest true "Answers"
// @Success 200 {object} shared.Response{data=dto.MockResultResponse}
// @Router /api/v1/mock/result [post]
func (h *PracticeHandler) SubmitMockResult(c *fiber.Ctx) error {
	var req dto.MockResultRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.progressSvc.SubmitMockResult(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", resp)
}

// @Summary Submit a mock quiz attempt
// @Description Scores the attempt against the quiz key and awards attempt XP
// @Tags practice
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param request body dto.SubmitAttemptRequest true "Attempt"
// @Success 201 {object} shared.Response{data=dto.SubmitAttemptResponse}
// @Router /api/v1/mock/attempts [post]
func (h *PracticeHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.SubmitAttemptRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.attemptSvc.Submit(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Attempt submitted", resp)
}

// @Summary List my attempts
// @Tags practice
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]dto.AttemptResponse}
// @Router /api/v1/mock/attempts [get]
func (h *PracticeHandler) GetAttemptHistory(c *fiber.Ctx) error {
	attempts, err := h.attemptSvc.History(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", attempts)
}

// @Summary Review an attempt
// @Tags practice
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param id path string true "Attempt ID"
// @Success 200 {object} shared.Response{data=dto.AttemptReviewResponse}
// @Router /api/v1/mock/attempts/{id} [get]
func (h *PracticeHandler) ReviewAttempt(c *fiber.Ctx) error {
	review, err := h.attemptSvc.Review(c.UserContext(), currentUser(c), currentRole(c), c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", review)
}
