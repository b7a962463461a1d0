package services

import (
	stdctx "context"
	"errors"
	"math"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

// Reward amounts.
const (
	DrillCorrectXP       = 10
	DrillCorrectStat     = 1
	MockResultXPPerRight = 15
	MockResultStatFactor = 3
	DailyBonusXP         = 50
	AttemptBaseXP        = 50
	AttemptHighScoreXP   = 25
	AttemptHighScoreMark = 0.8
)

type questionLookup interface {
	GetQuestion(ctx stdctx.Context, id string) (*model.Question, error)
	GetQuestionsByIDs(ctx stdctx.Context, ids []string) (map[string]model.Question, error)
}

// ProgressService runs the reward flows on top of the ledger. Every step is
// a separate ledger call, so a failure part way leaves the earlier steps
// applied.
type ProgressService struct {
	context.DefaultService

	ledger    *ledger.Ledger
	questions questionLookup
	location  *time.Location
}

const PROGRESS_SVC = "progress_svc"

func (svc ProgressService) Id() string {
	return PROGRESS_SVC
}

func (svc *ProgressService) Configure(ctx *context.Context) error {
	svc.location = time.UTC
	if tz := os.Getenv("LEDGER_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return err
		}
		svc.location = loc
	}
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProgressService) Start() error {
	db := svc.Service(DATABASE_SVC).(*DatabaseService).Db()
	monitoringSvc := svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.questions = repositories.NewContentRepository(db)
	svc.ledger = ledger.New(repositories.NewProgressRepository(db),
		ledger.WithLocation(svc.location),
		ledger.WithObserver(monitoringSvc.LedgerObserver()),
	)

	log.WithField("timezone", svc.location.String()).Info("Progress ledger ready")
	return nil
}

func NewProgressService(l *ledger.Ledger, questions questionLookup) *ProgressService {
	return &ProgressService{ledger: l, questions: questions, location: time.UTC}
}

func (svc *ProgressService) Ledger() *ledger.Ledger {
	return svc.ledger
}

// GetProgress returns the caller's record with the current week's campaign.
func (svc *ProgressService) GetProgress(ctx stdctx.Context, userID string) (*dto.ProgressResponse, error) {
	campaign, err := svc.ledger.EnsureCampaign(ctx, userID)
	if err != nil {
		return nil, err
	}

	p, err := svc.ledger.Progress(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The record may have moved since EnsureCampaign; the ensured campaign is
	// the one for this week either way.
	if !p.Campaign.IsCurrent(svc.ledger.Now()) {
		p.Campaign = &campaign
	}

	resp := &dto.ProgressResponse{
		UserID:   p.UserID,
		XP:       p.XP,
		Level:    p.Level(),
		Streak:   p.Streak.Count,
		Campaign: p.Campaign,
		Stats:    p.Stats,
	}
	if p.Streak.LastActive != "" {
		resp.LastActive = &p.Streak.LastActive
	}
	return resp, nil
}

func (svc *ProgressService) GetCampaign(ctx stdctx.Context, userID string) (*ledger.Campaign, error) {
	campaign, err := svc.ledger.EnsureCampaign(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// AnswerDrill checks one drill answer. A correct answer earns XP and a
// category point, counts as today's activity and completes today's campaign
// slot. Drills never pay the daily bonus.
func (svc *ProgressService) AnswerDrill(ctx stdctx.Context, userID string, req dto.DrillAnswerRequest) (*dto.DrillAnswerResponse, error) {
	question, err := svc.questions.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Question not found")
		}
		return nil, shared.NewInternalError(err, "Failed to load question")
	}

	resp := &dto.DrillAnswerResponse{
		Correct: sameAnswer(req.Chosen, question.Answer),
		Answer:  question.Answer,
	}
	if !resp.Correct {
		return resp, nil
	}

	category, err := ledger.ParseCategory(question.Type)
	if err != nil {
		return nil, shared.NewInternalError(err, "Question has an unknown category")
	}

	if err := svc.ledger.AwardXP(ctx, userID, ledger.Award{
		Source:   ledger.SourceDrill,
		XP:       DrillCorrectXP,
		Category: category,
		Count:    DrillCorrectStat,
	}); err != nil {
		return nil, err
	}
	resp.XPGained = DrillCorrectXP

	streak, err := svc.ledger.TouchStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Streak = streak.Count

	campaign, completed, err := svc.ledger.CompleteTodayCampaign(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.DayCompleted = completed
	resp.CompletedToday = campaign.CompletedDays()
	return resp, nil
}

// SubmitMockResult scores a finished mock round. The first completion of the
// day also pays the daily bonus.
func (svc *ProgressService) SubmitMockResult(ctx stdctx.Context, userID string, req dto.MockResultRequest) (*dto.MockResultResponse, error) {
	category, err := ledger.ParseCategory(req.Type)
	if err != nil {
		return nil, shared.NewBadRequestError(err, "Unknown question type")
	}

	// A repeated question counts once, on its first answer.
	answers := make([]dto.MockAnswer, 0, len(req.Answers))
	ids := make([]string, 0, len(req.Answers))
	seen := make(map[string]struct{}, len(req.Answers))
	for _, a := range req.Answers {
		if _, dup := seen[a.QuestionID]; dup {
			continue
		}
		seen[a.QuestionID] = struct{}{}
		answers = append(answers, a)
		ids = append(ids, a.QuestionID)
	}
	if len(answers) == 0 {
		return nil, shared.NewBadRequestError(nil, "No answers submitted")
	}

	questions, err := svc.questions.GetQuestionsByIDs(ctx, ids)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to load questions")
	}

	right := 0
	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			return nil, shared.NewBadRequestError(nil, "Unknown question "+a.QuestionID)
		}
		if sameAnswer(a.Chosen, q.Answer) {
			right++
		}
	}

	total := len(answers)
	resp := &dto.MockResultResponse{
		Right:    right,
		Wrong:    total - right,
		Accuracy: int(math.Round(float64(right) / float64(total) * 100)),
		XPGained: right * MockResultXPPerRight,
	}

	if err := svc.ledger.AwardXP(ctx, userID, ledger.Award{
		Source:   ledger.SourceMockResult,
		XP:       resp.XPGained,
		Category: category,
		Count:    right * MockResultStatFactor,
	}); err != nil {
		return nil, err
	}

	streak, err := svc.ledger.TouchStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp.Streak = streak.Count

	if resp.DayCompleted, err = svc.ledger.CompleteToday(ctx, userID); err != nil {
		return nil, err
	}

	if resp.DayCompleted {
		if err := svc.ledger.AwardXP(ctx, userID, ledger.Award{Source: ledger.SourceDailyBonus, XP: DailyBonusXP}); err != nil {
			return nil, err
		}
		resp.BonusXP = DailyBonusXP
	}
	return resp, nil
}

// AttemptXP is the XP a submitted mock quiz attempt earns.
func AttemptXP(score, total int) int {
	xp := AttemptBaseXP
	if total > 0 && float64(score)/float64(total) >= AttemptHighScoreMark {
		xp += AttemptHighScoreXP
	}
	return xp
}

func (svc *ProgressService) RewardAttempt(ctx stdctx.Context, userID string, score, total int) (int, error) {
	xp := AttemptXP(score, total)
	if err := svc.ledger.AwardXP(ctx, userID, ledger.Award{Source: ledger.SourceMockAttempt, XP: xp}); err != nil {
		return 0, err
	}
	return xp, nil
}

func sameAnswer(chosen, answer string) bool {
	return strings.TrimSpace(chosen) == strings.TrimSpace(answer)
}
