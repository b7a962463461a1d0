package services

import (
	stdctx "context"
	"errors"
	"fmt"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

const (
	DefaultQuestionLimit = 50
	MaxQuestionLimit     = 100
)

type ContentService struct {
	context.DefaultService
	content *repositories.ContentRepository
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.content = repositories.NewContentRepository(svc.Service(DATABASE_SVC).(*DatabaseService).Db())
	return nil
}

func NewContentService(content *repositories.ContentRepository) *ContentService {
	return &ContentService{content: content}
}

// ==================== QUESTIONS ====================

func (svc *ContentService) ListQuestions(ctx stdctx.Context, category string, limit int) ([]dto.QuestionResponse, error) {
	if category != "" {
		if _, err := ledger.ParseCategory(category); err != nil {
			return nil, shared.NewBadRequestError(err, "Unknown question type")
		}
	}
	if limit <= 0 {
		limit = DefaultQuestionLimit
	}
	if limit > MaxQuestionLimit {
		limit = MaxQuestionLimit
	}

	questions, err := svc.content.ListQuestions(ctx, category, limit)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load questions")
	}

	out := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		out[i] = toQuestionResponse(&q)
	}
	return out, nil
}

// ==================== FLASHCARDS ====================

func (svc *ContentService) ListFlashcards(ctx stdctx.Context, topic string) ([]dto.FlashcardResponse, error) {
	cards, err := svc.content.ListFlashcards(ctx, strings.TrimSpace(topic))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load flashcards")
	}

	out := make([]dto.FlashcardResponse, len(cards))
	for i, c := range cards {
		out[i] = dto.FlashcardResponse{ID: c.ID, Front: c.Front, Back: c.Back, Topic: c.Topic}
	}
	return out, nil
}

// ==================== QUIZZES ====================

func (svc *ContentService) ListQuizzes(ctx stdctx.Context, quizType, company string) ([]dto.QuizSummary, error) {
	quizzes, err := svc.content.ListQuizzes(ctx, quizType, strings.TrimSpace(company))
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load quizzes")
	}

	out := make([]dto.QuizSummary, len(quizzes))
	for i := range quizzes {
		out[i] = toQuizSummary(&quizzes[i])
	}
	return out, nil
}

// GetQuiz returns a quiz for a mock round. The answer key stays on the server.
func (svc *ContentService) GetQuiz(ctx stdctx.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := svc.content.GetQuiz(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Quiz not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load quiz")
	}

	resp := &dto.QuizResponse{
		QuizSummary: toQuizSummary(quiz),
		Questions:   make([]dto.QuizQuestionView, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		resp.Questions[i] = dto.QuizQuestionView{Text: q.Text, Options: q.Options}
	}
	return resp, nil
}

// ==================== SUBMISSIONS ====================

func (svc *ContentService) SubmitQuestion(ctx stdctx.Context, userID string, req dto.SubmitQuestionRequest) (*dto.QuestionSubmissionResponse, error) {
	sub := &model.QuestionSubmission{
		Type:        req.Type,
		Question:    strings.TrimSpace(req.Question),
		Options:     trimAll(req.Options),
		Answer:      strings.TrimSpace(req.Answer),
		Source:      strings.TrimSpace(req.Source),
		SubmittedBy: userID,
	}
	if err := svc.content.CreateQuestionSubmission(ctx, sub); err != nil {
		return nil, shared.NewInternalError(err, "Failed to save submission")
	}

	log.WithFields(log.Fields{"user_id": userID, "submission_id": sub.ID}).Info("Question submitted for review")
	resp := toQuestionSubmissionResponse(sub)
	return &resp, nil
}

func (svc *ContentService) SubmitQuiz(ctx stdctx.Context, userID string, req dto.SubmitQuizRequest) (*dto.QuizSubmissionResponse, error) {
	questions := make([]model.QuizQuestion, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.QuizQuestion{Text: strings.TrimSpace(q.Text), Options: trimAll(q.Options), CorrectIndex: q.CorrectIndex}
	}
	if err := checkQuizQuestions(questions); err != nil {
		return nil, shared.NewBadRequestError(err, err.Error())
	}

	sub := &model.QuizSubmission{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Role:        strings.TrimSpace(req.Role),
		Type:        req.Type,
		Description: strings.TrimSpace(req.Description),
		Questions:   questions,
		SubmittedBy: userID,
	}
	if err := svc.content.CreateQuizSubmission(ctx, sub); err != nil {
		return nil, shared.NewInternalError(err, "Failed to save submission")
	}

	log.WithFields(log.Fields{"user_id": userID, "submission_id": sub.ID}).Info("Quiz submitted for review")
	resp := toQuizSubmissionResponse(sub)
	return &resp, nil
}

func (svc *ContentService) ListQuestionSubmissions(ctx stdctx.Context) ([]dto.QuestionSubmissionResponse, error) {
	subs, err := svc.content.ListQuestionSubmissions(ctx)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load submissions")
	}

	out := make([]dto.QuestionSubmissionResponse, len(subs))
	for i := range subs {
		out[i] = toQuestionSubmissionResponse(&subs[i])
	}
	return out, nil
}

func (svc *ContentService) ListQuizSubmissions(ctx stdctx.Context) ([]dto.QuizSubmissionResponse, error) {
	subs, err := svc.content.ListQuizSubmissions(ctx)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load submissions")
	}

	out := make([]dto.QuizSubmissionResponse, len(subs))
	for i := range subs {
		out[i] = toQuizSubmissionResponse(&subs[i])
	}
	return out, nil
}

// ApproveQuestionSubmission publishes a pending question into the drill pool.
func (svc *ContentService) ApproveQuestionSubmission(ctx stdctx.Context, adminID, id string) (*dto.QuestionResponse, error) {
	sub, err := svc.content.GetQuestionSubmission(ctx, id)
	if err != nil {
		return nil, submissionLookupError(err)
	}
	if err := checkQuestionSubmission(sub); err != nil {
		return nil, shared.NewBadRequestError(err, err.Error())
	}

	question := &model.Question{
		Type:      sub.Type,
		Question:  sub.Question,
		Options:   sub.Options,
		Answer:    sub.Answer,
		Source:    sub.Source,
		CreatedBy: sub.SubmittedBy,
	}
	if err := svc.content.ApproveQuestionSubmission(ctx, sub.ID, question); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Submission not found")
		}
		return nil, shared.NewInternalError(err, "Failed to approve submission")
	}

	log.WithFields(log.Fields{"admin_id": adminID, "submission_id": id, "question_id": question.ID}).Info("Question submission approved")
	resp := toQuestionResponse(question)
	return &resp, nil
}

func (svc *ContentService) RejectQuestionSubmission(ctx stdctx.Context, adminID, id string) error {
	if err := svc.content.DeleteQuestionSubmission(ctx, id); err != nil {
		return submissionLookupError(err)
	}
	log.WithFields(log.Fields{"admin_id": adminID, "submission_id": id}).Info("Question submission rejected")
	return nil
}

func (svc *ContentService) ApproveQuizSubmission(ctx stdctx.Context, adminID, id string) (*dto.QuizSummary, error) {
	sub, err := svc.content.GetQuizSubmission(ctx, id)
	if err != nil {
		return nil, submissionLookupError(err)
	}
	if err := checkQuizSubmission(sub); err != nil {
		return nil, shared.NewBadRequestError(err, err.Error())
	}

	quiz := &model.MockQuiz{
		Title:       sub.Title,
		Company:     sub.Company,
		Role:        sub.Role,
		Type:        sub.Type,
		Description: sub.Description,
		Questions:   sub.Questions,
		CreatedBy:   sub.SubmittedBy,
	}
	if err := svc.content.ApproveQuizSubmission(ctx, sub.ID, quiz); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Submission not found")
		}
		return nil, shared.NewInternalError(err, "Failed to approve submission")
	}

	log.WithFields(log.Fields{"admin_id": adminID, "submission_id": id, "quiz_id": quiz.ID}).Info("Quiz submission approved")
	summary := toQuizSummary(quiz)
	return &summary, nil
}

func (svc *ContentService) RejectQuizSubmission(ctx stdctx.Context, adminID, id string) error {
	if err := svc.content.DeleteQuizSubmission(ctx, id); err != nil {
		return submissionLookupError(err)
	}
	log.WithFields(log.Fields{"admin_id": adminID, "submission_id": id}).Info("Quiz submission rejected")
	return nil
}

func submissionLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(err, "Submission not found")
	}
	return shared.NewInternalError(err, "Failed to load submission")
}

func checkQuestionSubmission(sub *model.QuestionSubmission) error {
	if _, err := ledger.ParseCategory(sub.Type); err != nil {
		return fmt.Errorf("submission type: %w", err)
	}
	if strings.TrimSpace(sub.Question) == "" {
		return errors.New("submission is missing the question")
	}
	if strings.TrimSpace(sub.Answer) == "" {
		return errors.New("submission is missing the answer")
	}
	return nil
}

func checkQuizSubmission(sub *model.QuizSubmission) error {
	if strings.TrimSpace(sub.Title) == "" {
		return errors.New("submission is missing the title")
	}
	if strings.TrimSpace(sub.Company) == "" {
		return errors.New("submission is missing the company")
	}
	if _, err := ledger.ParseCategory(sub.Type); err != nil {
		return fmt.Errorf("submission type: %w", err)
	}
	return checkQuizQuestions(sub.Questions)
}

func checkQuizQuestions(questions []model.QuizQuestion) error {
	if len(questions) == 0 {
		return errors.New("quiz has no questions")
	}
	for i, q := range questions {
		if q.Text == "" {
			return fmt.Errorf("question %d has no text", i)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d needs at least two options", i)
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %d has no valid correct option", i)
		}
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		ID:       q.ID,
		Type:     q.Type,
		Question: q.Question,
		Options:  q.Options,
		Source:   q.Source,
	}
}

func toQuizSummary(q *model.MockQuiz) dto.QuizSummary {
	return dto.QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Company:       q.Company,
		Role:          q.Role,
		Type:          q.Type,
		Description:   q.Description,
		QuestionCount: len(q.Questions),
	}
}

func toQuestionSubmissionResponse(s *model.QuestionSubmission) dto.QuestionSubmissionResponse {
	return dto.QuestionSubmissionResponse{
		ID:          s.ID,
		Type:        s.Type,
		Question:    s.Question,
		Options:     s.Options,
		Answer:      s.Answer,
		Source:      s.Source,
		SubmittedBy: s.SubmittedBy,
		CreatedAt:   s.CreatedAt,
	}
}

func toQuizSubmissionResponse(s *model.QuizSubmission) dto.QuizSubmissionResponse {
	questions := make([]dto.QuizQuestion, len(s.Questions))
	for i, q := range s.Questions {
		questions[i] = dto.QuizQuestion{Text: q.Text, Options: q.Options, CorrectIndex: q.CorrectIndex}
	}
	return dto.QuizSubmissionResponse{
		ID:          s.ID,
		Title:       s.Title,
		Company:     s.Company,
		Role:        s.Role,
		Type:        s.Type,
		Description: s.Description,
		Questions:   questions,
		SubmittedBy: s.SubmittedBy,
		CreatedAt:   s.CreatedAt,
	}
}
