package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// @Summary List drill questions
// @Description Random questions, optionally of one type
// @Tags content
// @Produce json
// @Security Bearer
// @Param type query string false "aptitude, technical or hr"
// @Param limit query int false "Limit results (default 50)"
// @Success 200 {object} shared.Response{data=[]dto.QuestionResponse}
// @Router /api/v1/questions [get]
func (h *ContentHandler) GetQuestions(c *fiber.Ctx) error {
	questions, err := h.contentSvc.ListQuestions(c.UserContext(), c.Query("type"), queryLimit(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", questions)
}

// @Summary List flashcards
// @Tags content
// @Produce json
// @Security Bearer
// @Param topic query string false "Topic"
// @Success 200 {object} shared.Response{data=[]dto.FlashcardResponse}
// @Router /api/v1/flashcards [get]
func (h *ContentHandler) GetFlashcards(c *fiber.Ctx) error {
	cards, err := h.contentSvc.ListFlashcards(c.UserContext(), c.Query("topic"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", cards)
}

// @Summary List mock quizzes
// @Tags content
// @Produce json
// @Security Bearer
// @Param type query string false "Quiz type"
// @Param company query string false "Company"
// @Success 200 {object} shared.Response{data=[]dto.QuizSummary}
// @Router /api/v1/quizzes [get]
func (h *ContentHandler) GetQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.contentSvc.ListQuizzes(c.UserContext(), c.Query("type"), c.Query("company"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quizzes)
}

// @Summary Get a mock quiz
// @Description Questions and options without the answer key
// @Tags content
// @Produce json
// @Security Bearer
// @Param id path string true "Quiz ID"
// @Success 200 {object} shared.Response{data=dto.QuizResponse}
// @Router /api/v1/quizzes/{id} [get]
func (h *ContentHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.contentSvc.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", quiz)
}

// @Summary Submit a question for review
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SubmitQuestionRequest true "Question"
// @Success 201 {object} shared.Response{data=dto.QuestionSubmissionResponse}
// @Router /api/v1/submissions/questions [post]
func (h *ContentHandler) SubmitQuestion(c *fiber.Ctx) error {
	var req dto.SubmitQuestionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.contentSvc.SubmitQuestion(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Submitted for review", resp)
}

// @Summary Submit a quiz for review
// @Tags content
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.SubmitQuizRequest true "Quiz"
// @Success 201 {object} shared.Response{data=dto.QuizSubmissionResponse}
// @Router /api/v1/submissions/quizzes [post]
func (h *ContentHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	resp, err := h.contentSvc.SubmitQuiz(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Submitted for review", resp)
}
