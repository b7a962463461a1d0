package services

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

// AttemptService stores finished mock quiz runs and pays attempt XP.
type AttemptService struct {
	context.DefaultService

	content     *repositories.ContentRepository
	attempts    *repositories.AttemptRepository
	progress    *ProgressService
	leaderboard *LeaderboardService
}

const ATTEMPT_SVC = "attempt_svc"

func (svc AttemptService) Id() string {
	return ATTEMPT_SVC
}

func (svc *AttemptService) Start() error {
	db := svc.Service(DATABASE_SVC).(*DatabaseService).Db()
	svc.content = repositories.NewContentRepository(db)
	svc.attempts = repositories.NewAttemptRepository(db)
	svc.progress = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.leaderboard = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	return nil
}

func NewAttemptService(content *repositories.ContentRepository, attempts *repositories.AttemptRepository, progress *ProgressService, leaderboard *LeaderboardService) *AttemptService {
	return &AttemptService{content: content, attempts: attempts, progress: progress, leaderboard: leaderboard}
}

// ScoreAttempt counts answers matching the quiz key. Answers are keyed by
// question index; an index outside the quiz is rejected.
func ScoreAttempt(questions []model.QuizQuestion, answers map[int]int) (int, error) {
	score := 0
	for idx, chosen := range answers {
		if idx < 0 || idx >= len(questions) {
			return 0, fmt.Errorf("answer for question %d is out of range", idx)
		}
		if questions[idx].CorrectIndex == chosen {
			score++
		}
	}
	return score, nil
}

func (svc *AttemptService) Submit(ctx stdctx.Context, userID string, req dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	quiz, err := svc.content.GetQuiz(ctx, req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Quiz not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load quiz")
	}

	questions := []model.QuizQuestion(quiz.Questions)
	score, err := ScoreAttempt(questions, req.Answers)
	if err != nil {
		return nil, shared.NewBadRequestError(err, err.Error())
	}

	total := len(questions)
	attempt := &model.MockAttempt{
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		Company:     quiz.Company,
		Role:        quiz.Role,
		UserID:      userID,
		Answers:     datatypes.NewJSONType(req.Answers),
		Score:       score,
		Total:       total,
		DurationSec: req.DurationSec,
		Status:      shared.AttemptStatusCompleted,
		SubmittedAt: time.Now(),
	}
	if total > 0 {
		attempt.Accuracy = float64(score) / float64(total)
	}

	if err := svc.attempts.CreateAttempt(ctx, attempt); err != nil {
		return nil, shared.NewInternalError(err, "Failed to save attempt")
	}
	svc.leaderboard.Invalidate(ctx, attempt.Company)

	xp, err := svc.progress.RewardAttempt(ctx, userID, score, total)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Attempt saved but XP award failed")
		return nil, err
	}

	return &dto.SubmitAttemptResponse{Attempt: toAttemptResponse(attempt), XPGained: xp}, nil
}

// History lists the caller's attempts, newest first.
func (svc *AttemptService) History(ctx stdctx.Context, userID string) ([]dto.AttemptResponse, error) {
	attempts, err := svc.attempts.ListByUser(ctx, userID)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load attempts")
	}
	return toAttemptResponses(attempts), nil
}

// Review returns an attempt next to its quiz key. Only the owner or an admin
// may see it.
func (svc *AttemptService) Review(ctx stdctx.Context, userID, role, attemptID string) (*dto.AttemptReviewResponse, error) {
	attempt, err := svc.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Attempt not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load attempt")
	}
	if attempt.UserID != userID && role != model.RoleAdmin {
		return nil, shared.NewForbiddenError(nil, "Not your attempt")
	}

	resp := &dto.AttemptReviewResponse{Attempt: toAttemptResponse(attempt)}

	quiz, err := svc.content.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.Questions = []dto.AttemptReviewQuestion{}
			return resp, nil
		}
		return nil, shared.NewInternalError(err, "Failed to load quiz")
	}

	answers := attempt.Answers.Data()
	resp.Questions = make([]dto.AttemptReviewQuestion, len(quiz.Questions))
	for i, q := range quiz.Questions {
		review := dto.AttemptReviewQuestion{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		}
		if chosen, ok := answers[i]; ok {
			review.Chosen = &chosen
			review.Correct = chosen == q.CorrectIndex
		}
		resp.Questions[i] = review
	}
	return resp, nil
}

func (svc *AttemptService) ListAll(ctx stdctx.Context) ([]dto.AttemptResponse, error) {
	attempts, err := svc.attempts.ListAll(ctx)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load attempts")
	}
	return toAttemptResponses(attempts), nil
}

func toAttemptResponses(attempts []model.MockAttempt) []dto.AttemptResponse {
	out := make([]dto.AttemptResponse, len(attempts))
	for i := range attempts {
		out[i] = toAttemptResponse(&attempts[i])
	}
	return out
}

func toAttemptResponse(a *model.MockAttempt) dto.AttemptResponse {
	answers := a.Answers.Data()
	if answers == nil {
		answers = map[int]int{}
	}
	return dto.AttemptResponse{
		ID:          a.ID,
		QuizID:      a.QuizID,
		QuizTitle:   a.QuizTitle,
		Company:     a.Company,
		Role:        a.Role,
		UserID:      a.UserID,
		Answers:     answers,
		Score:       a.Score,
		Total:       a.Total,
		Accuracy:    a.Accuracy,
		DurationSec: a.DurationSec,
		Status:      a.Status,
		SubmittedAt: a.SubmittedAt,
	}
}
