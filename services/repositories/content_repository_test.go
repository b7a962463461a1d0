package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
)

func TestContentRepository_ApproveQuestionSubmission(t *testing.T) {
	repo := repositories.NewContentRepository(newTestDB(t))
	ctx := context.Background()

	sub := &model.QuestionSubmission{
		Type:        "technical",
		Question:    "What does a goroutine leak look like?",
		Options:     datatypes.JSONSlice[string]{"a", "b"},
		Answer:      "a",
		SubmittedBy: "u1",
	}
	require.NoError(t, repo.CreateQuestionSubmission(ctx, sub))

	pending, err := repo.ListQuestionSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.SubmissionStatusPending, pending[0].Status)

	q := &model.Question{Type: sub.Type, Question: sub.Question, Options: sub.Options, Answer: sub.Answer}
	require.NoError(t, repo.ApproveQuestionSubmission(ctx, sub.ID, q))

	pending, err = repo.ListQuestionSubmissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	live, err := repo.GetQuestion(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string(live.Options))

	err = repo.ApproveQuestionSubmission(ctx, sub.ID, &model.Question{Type: "hr", Question: "x", Answer: "y"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The failed approval rolled back its insert.
	count, err := repo.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestContentRepository_Quizzes(t *testing.T) {
	repo := repositories.NewContentRepository(newTestDB(t))
	ctx := context.Background()

	quiz := &model.MockQuiz{
		Title:   "Backend screen",
		Company: "Acme",
		Type:    "technical",
		Questions: datatypes.JSONSlice[model.QuizQuestion]{
			{Text: "2+2", Options: []string{"3", "4"}, CorrectIndex: 1},
		},
	}
	require.NoError(t, repo.CreateQuiz(ctx, quiz))

	got, err := repo.GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, 1, got.Questions[0].CorrectIndex)

	byCompany, err := repo.ListQuizzes(ctx, "", "acme")
	require.NoError(t, err)
	assert.Len(t, byCompany, 1)

	byType, err := repo.ListQuizzes(ctx, "hr", "")
	require.NoError(t, err)
	assert.Empty(t, byType)
}

func TestAttemptRepository_ListByUserNewestFirst(t *testing.T) {
	repo := repositories.NewAttemptRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	for i, score := range []int{3, 5, 4} {
		require.NoError(t, repo.CreateAttempt(ctx, &model.MockAttempt{
			QuizID:      "q1",
			Company:     "Acme",
			UserID:      "u1",
			Answers:     datatypes.NewJSONType(map[int]int{0: 1}),
			Score:       score,
			Total:       5,
			SubmittedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.CreateAttempt(ctx, &model.MockAttempt{QuizID: "q1", Company: "Other", UserID: "u2", Total: 5, SubmittedAt: base}))

	attempts, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	assert.Equal(t, 4, attempts[0].Score)
	assert.Equal(t, 3, attempts[2].Score)
	assert.Equal(t, map[int]int{0: 1}, attempts[0].Answers.Data())

	acme, err := repo.ListByCompany(ctx, "ACME")
	require.NoError(t, err)
	assert.Len(t, acme, 3)
}
