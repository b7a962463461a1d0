package handlers_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/services"
	"github.com/cadetforge/arena_api/services/handlers"
	"github.com/cadetforge/arena_api/shared"
)

type fakeProgress struct {
	drills []string
	err    error
}

func (f *fakeProgress) GetProgress(_ context.Context, userID string) (*dto.ProgressResponse, error) {
	return &dto.ProgressResponse{UserID: userID, Stats: ledger.NewStats()}, f.err
}

func (f *fakeProgress) GetCampaign(context.Context, string) (*ledger.Campaign, error) {
	return nil, f.err
}

func (f *fakeProgress) AnswerDrill(_ context.Context, userID string, req dto.DrillAnswerRequest) (*dto.DrillAnswerResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.drills = append(f.drills, userID+":"+req.QuestionID)
	return &dto.DrillAnswerResponse{Correct: true, XPGained: 10, Streak: 1}, nil
}

func (f *fakeProgress) SubmitMockResult(context.Context, string, dto.MockResultRequest) (*dto.MockResultResponse, error) {
	return &dto.MockResultResponse{}, f.err
}

type fakeAttempts struct{}

func (fakeAttempts) Submit(_ context.Context, userID string, req dto.SubmitAttemptRequest) (*dto.SubmitAttemptResponse, error) {
	return &dto.SubmitAttemptResponse{Attempt: dto.AttemptResponse{UserID: userID, QuizID: req.QuizID}, XPGained: 50}, nil
}

func (fakeAttempts) History(context.Context, string) ([]dto.AttemptResponse, error) {
	return []dto.AttemptResponse{}, nil
}

func (fakeAttempts) Review(context.Context, string, string, string) (*dto.AttemptReviewResponse, error) {
	return nil, shared.NewForbiddenError(nil, "Not your attempt")
}

func (fakeAttempts) ListAll(context.Context) ([]dto.AttemptResponse, error) {
	return []dto.AttemptResponse{}, nil
}

type fakeLeaderboard struct {
	limits  []int
	company string
	caller  string
}

func (f *fakeLeaderboard) GetGlobalLeaderboard(_ context.Context, limit int, currentUserID string) (*dto.LeaderboardResponse, error) {
	f.limits = append(f.limits, limit)
	f.caller = currentUserID
	return &dto.LeaderboardResponse{Entries: []dto.LeaderboardEntry{}}, nil
}

func (f *fakeLeaderboard) GetCompanyLeaderboard(_ context.Context, company string, limit int, currentUserID string) (*dto.LeaderboardResponse, error) {
	f.company = company
	return f.GetGlobalLeaderboard(context.Background(), limit, currentUserID)
}

func (f *fakeLeaderboard) GetCompanyAnalytics(context.Context) ([]dto.CompanyAnalytics, error) {
	return []dto.CompanyAnalytics{}, nil
}

func newApp(user string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: services.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(shared.UserID, user)
		return c.Next()
	})
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestPracticeHandler_AnswerDrill(t *testing.T) {
	progress := &fakeProgress{}
	h := handlers.NewPracticeHandler(progress, fakeAttempts{})
	app := newApp("u1")
	app.Post("/drill", h.AnswerDrill)

	status, body := post(t, app, "/drill", `{"question_id":"q1","chosen":"Paris"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"xp_gained":10`)
	assert.Equal(t, []string{"u1:q1"}, progress.drills)

	status, body = post(t, app, "/drill", `{"chosen":"Paris"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Validation failed")
	assert.Len(t, progress.drills, 1)

	status, _ = post(t, app, "/drill", `{not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestPracticeHandler_LedgerErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: fmt.Errorf("complete today: %w", ledger.ErrConflict), status: http.StatusConflict},
		{err: ledger.ErrUserNotFound, status: http.StatusNotFound},
		{err: ledger.ErrPersistenceUnavailable, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := handlers.NewPracticeHandler(&fakeProgress{err: tt.err}, fakeAttempts{})
			app := newApp("u1")
			app.Post("/drill", h.AnswerDrill)

			status, _ := post(t, app, "/drill", `{"question_id":"q1","chosen":"Paris"}`)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestPracticeHandler_Attempts(t *testing.T) {
	h := handlers.NewPracticeHandler(&fakeProgress{}, fakeAttempts{})
	app := newApp("u1")
	app.Post("/attempts", h.SubmitAttempt)
	app.Get("/attempts/:id/review", h.ReviewAttempt)

	status, body := post(t, app, "/attempts", `{"quiz_id":"qz1","answers":{"0":2}}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.Contains(t, body, `"quiz_id":"qz1"`)

	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/attempts/a1/review", nil))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestLeaderboardHandler_Limit(t *testing.T) {
	board := &fakeLeaderboard{}
	h := handlers.NewLeaderboardHandler(board)
	app := newApp("u7")
	app.Get("/leaderboard", h.GetGlobalLeaderboard)
	app.Get("/leaderboard/company/:company", h.GetCompanyLeaderboard)

	for _, path := range []string{"/leaderboard", "/leaderboard?limit=5", "/leaderboard?limit=500", "/leaderboard?limit=abc"} {
		status, _ := do(t, app, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, status)
	}
	assert.Equal(t, []int{50, 5, 50, 50}, board.limits)
	assert.Equal(t, "u7", board.caller)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/leaderboard/company/Google?limit=3", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Google", board.company)
	assert.Equal(t, 3, board.limits[len(board.limits)-1])
}
