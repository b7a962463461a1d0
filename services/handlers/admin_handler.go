package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/shared"
)

type AdminHandler struct {
	contentSvc     ContentServiceInterface
	attemptSvc     AttemptServiceInterface
	leaderboardSvc LeaderboardServiceInterface
}

func NewAdminHandler(contentSvc ContentServiceInterface, attemptSvc AttemptServiceInterface, leaderboardSvc LeaderboardServiceInterface) *AdminHandler {
	return &AdminHandler{
		contentSvc:     contentSvc,
		attemptSvc:     attemptSvc,
		leaderboardSvc: leaderboardSvc,
	}
}

// @Summary List pending question submissions (Admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=[]dto.QuestionSubmissionResponse}
// @Router /api/v1/admin/submissions/questions [get]
func (h *AdminHandler) GetQuestionSubmissions(c *fiber.Ctx) error {
	subs, err := h.contentSvc.ListQuestionSubmissions(c.UserContext())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", subs)
}

// @Summary Approve a question submission (Admin)
// @Description Publishes the question and removes the submission
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id path string true "Submission ID"
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/admin/submissions/questions/{id}/approve [post]
func (h *AdminHandler) ApproveQuestionSubmission(c *fiber.Ctx) error {
	question, err := h.contentSvc.ApproveQuestionSubmission(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Submission approved", question)
}

// @Summary Reject a question submission (Admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id path string true "Submission ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/submissions/questions/{id} [delete]
func (h *AdminHandler) RejectQuestionSubmission(c *fiber.Ctx) error {
	if err := h.contentSvc.RejectQuestionSubmission(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Submission rejected", nil)
}

// @Summary List pending quiz submissions (Admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=[]dto.QuizSubmissionResponse}
// @Router /api/v1/admin/submissions/quizzes [get]
func (h *AdminHandler) GetQuizSubmissions(c *fiber.Ctx) error {
	subs, err := h.contentSvc.ListQuizSubmissions(c.UserContext())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", subs)
}

// @Summary Approve a quiz submission (Admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id path string true "Submission ID"
// @Success 200 {object} shared.Response{data=dto.QuizSummary}
// @Router /api/v1/admin/submissions/quizzes/{id}/approve [post]
func (h *AdminHandler) ApproveQuizSubmission(c *fiber.Ctx) error {
	quiz, err := h.contentSvc.ApproveQuizSubmission(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Submission approved", quiz)
}

// @Summary Reject a quiz submission (Admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param id path string true "Submission ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/submissions/quizzes/{id} [delete]
func (h *AdminHandler) RejectQuizSubmission(c *fiber.Ctx) error {
	if err := h.contentSvc.RejectQuizSubmission(c.UserContext(), currentUser(c), c.Params("id")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Submission rejected", nil)
}

// @Summary List all attempts (Admin)
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=[]dto.AttemptResponse}
// @Router /api/v1/admin/attempts [get]
func (h *AdminHandler) GetAttempts(c *fiber.Ctx) error {
	attempts, err := h.attemptSvc.ListAll(c.UserContext())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", attempts)
}

// @Summary Company analytics (Admin)
// @Description Average score and attempt count per company
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=[]dto.CompanyAnalytics}
// @Router /api/v1/admin/analytics/companies [get]
func (h *AdminHandler) GetCompanyAnalytics(c *fiber.Ctx) error {
	rows, err := h.leaderboardSvc.GetCompanyAnalytics(c.UserContext())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", rows)
}
