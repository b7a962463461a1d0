package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/ledger"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*dto.UserInfo, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserInfo, error)
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type ProgressServiceInterface interface {
	GetProgress(ctx context.Context, userID string) (*dto.ProgressResponse, error)
	GetCampaign(ctx context.Context, userID string) (*ledger.Campaign, error)
	AnswerDrill(ctx context.Context, userID string, req dto.DrillAnswerRequest) (*dto.DrillAnswerResponse, error)
	SubmitMockResult(ctx context.Context, userID string, req dto.MockResultRequest) (*dto.MockResultResponse, error)
}

type AttemptServiceInterface interface {
	Submit(ctx context.Context, userID string, req dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error)
	History(ctx context.Context, userID string) ([]dto.AttemptResponse, error)
	Review(ctx context.Context, userID, role, attemptID string) (*dto.AttemptReviewResponse, error)
	ListAll(ctx context.Context) ([]dto.AttemptResponse, error)
}

type ContentServiceInterface interface {
	ListQuestions(ctx context.Context, category string, limit int) ([]dto.QuestionResponse, error)
	ListFlashcards(ctx context.Context, topic string) ([]dto.FlashcardResponse, error)
	ListQuizzes(ctx context.Context, quizType, company string) ([]dto.QuizSummary, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	SubmitQuestion(ctx context.Context, userID string, req dto.SubmitQuestionRequest) (*dto.QuestionSubmissionResponse, error)
	SubmitQuiz(ctx context.Context, userID string, req dto.SubmitQuizRequest) (*dto.QuizSubmissionResponse, error)
	ListQuestionSubmissions(ctx context.Context) ([]dto.QuestionSubmissionResponse, error)
	ListQuizSubmissions(ctx context.Context) ([]dto.QuizSubmissionResponse, error)
	ApproveQuestionSubmission(ctx context.Context, adminID, id string) (*dto.QuestionResponse, error)
	RejectQuestionSubmission(ctx context.Context, adminID, id string) error
	ApproveQuizSubmission(ctx context.Context, adminID, id string) (*dto.QuizSummary, error)
	RejectQuizSubmission(ctx context.Context, adminID, id string) error
}

type LeaderboardServiceInterface interface {
	GetGlobalLeaderboard(ctx context.Context, limit int, currentUserID string) (*dto.LeaderboardResponse, error)
	GetCompanyLeaderboard(ctx context.Context, company string, limit int, currentUserID string) (*dto.LeaderboardResponse, error)
	GetCompanyAnalytics(ctx context.Context) ([]dto.CompanyAnalytics, error)
}

type ReferenceServiceInterface interface {
	Upload(ctx context.Context, userID, title string, file *multipart.FileHeader) (*dto.ReferenceResponse, error)
	List(ctx context.Context, userID string) ([]dto.ReferenceResponse, error)
	Delete(ctx context.Context, userID, id string) error
}

type ExplainServiceInterface interface {
	ExplainAnswer(ctx context.Context, req dto.ExplainAnswerRequest) (*dto.ExplainAnswerResponse, error)
	Summarize(ctx context.Context, req dto.SummarizeRequest) (*dto.SummarizeResponse, error)
}
