package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/shared"
)

func (env *testEnv) quiz(t *testing.T) *model.MockQuiz {
	t.Helper()
	q := &model.MockQuiz{
		Title:   "Amazon Backend Intern Mock",
		Company: "Amazon",
		Role:    "Backend Intern",
		Type:    "technical",
		Questions: []model.QuizQuestion{
			{Text: "Which HTTP method is idempotent?", Options: []string{"POST", "PATCH", "PUT", "CONNECT"}, CorrectIndex: 2},
			{Text: "Which database is best for key-value access?", Options: []string{"Postgres", "MongoDB", "Redis", "MySQL"}, CorrectIndex: 2},
		},
	}
	require.NoError(t, env.content.CreateQuiz(context.Background(), q))
	return q
}

func TestScoreAttempt(t *testing.T) {
	questions := []model.QuizQuestion{{CorrectIndex: 1}, {CorrectIndex: 0}, {CorrectIndex: 3}}

	score, err := ScoreAttempt(questions, map[int]int{0: 1, 1: 2, 2: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, score)

	score, err = ScoreAttempt(questions, map[int]int{})
	require.NoError(t, err)
	assert.Zero(t, score)

	_, err = ScoreAttempt(questions, map[int]int{3: 0})
	assert.Error(t, err)
}

func TestAttemptService_Submit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "att@example.com", "Att")
	quiz := env.quiz(t)

	resp, err := env.attemptSvc.Submit(ctx, uid, dto.SubmitAttemptRequest{
		QuizID:      quiz.ID,
		Answers:     map[int]int{0: 2, 1: 0},
		DurationSec: 95,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Attempt.Score)
	assert.Equal(t, 2, resp.Attempt.Total)
	assert.InDelta(t, 0.5, resp.Attempt.Accuracy, 1e-9)
	assert.Equal(t, shared.AttemptStatusCompleted, resp.Attempt.Status)
	assert.Equal(t, "Amazon", resp.Attempt.Company)
	assert.Equal(t, quiz.Title, resp.Attempt.QuizTitle)
	assert.Equal(t, AttemptBaseXP, resp.XPGained)

	resp, err = env.attemptSvc.Submit(ctx, uid, dto.SubmitAttemptRequest{
		QuizID:  quiz.ID,
		Answers: map[int]int{0: 2, 1: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, AttemptBaseXP+AttemptHighScoreXP, resp.XPGained)

	assert.Equal(t, 125, env.progressOf(t, uid).XP)

	history, err := env.attemptSvc.History(ctx, uid)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	for _, a := range history {
		assert.Equal(t, uid, a.UserID)
	}
}

func TestAttemptService_SubmitRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "bad@example.com", "Bad")
	quiz := env.quiz(t)

	_, err := env.attemptSvc.Submit(ctx, uid, dto.SubmitAttemptRequest{QuizID: "missing", Answers: map[int]int{}})
	requireStatus(t, err, http.StatusNotFound)

	_, err = env.attemptSvc.Submit(ctx, uid, dto.SubmitAttemptRequest{QuizID: quiz.ID, Answers: map[int]int{5: 1}})
	requireStatus(t, err, http.StatusBadRequest)

	history, err := env.attemptSvc.History(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.Zero(t, env.progressOf(t, uid).XP)
}

func TestAttemptService_Review(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner@example.com", "Owner")
	other := env.register(t, "other@example.com", "Other")
	quiz := env.quiz(t)

	submitted, err := env.attemptSvc.Submit(ctx, owner, dto.SubmitAttemptRequest{
		QuizID:  quiz.ID,
		Answers: map[int]int{0: 1},
	})
	require.NoError(t, err)
	id := submitted.Attempt.ID

	review, err := env.attemptSvc.Review(ctx, owner, model.RoleUser, id)
	require.NoError(t, err)
	require.Len(t, review.Questions, 2)

	first := review.Questions[0]
	require.NotNil(t, first.Chosen)
	assert.Equal(t, 1, *first.Chosen)
	assert.Equal(t, 2, first.CorrectIndex)
	assert.False(t, first.Correct)
	assert.Nil(t, review.Questions[1].Chosen)

	_, err = env.attemptSvc.Review(ctx, other, model.RoleUser, id)
	requireStatus(t, err, http.StatusForbidden)

	_, err = env.attemptSvc.Review(ctx, other, model.RoleAdmin, id)
	assert.NoError(t, err)

	_, err = env.attemptSvc.Review(ctx, owner, model.RoleUser, "missing")
	requireStatus(t, err, http.StatusNotFound)

	all, err := env.attemptSvc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
