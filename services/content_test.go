package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
)

func TestContentService_QuestionReviewFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "contrib@example.com", "Contrib")

	sub, err := env.contentSvc.SubmitQuestion(ctx, uid, dto.SubmitQuestionRequest{
		Type:     "technical",
		Question: "  What is a mutex?  ",
		Options:  []string{" Lock ", "Queue"},
		Answer:   "Lock",
	})
	require.NoError(t, err)
	assert.Equal(t, "What is a mutex?", sub.Question)
	assert.Equal(t, []string{"Lock", "Queue"}, sub.Options)

	pending, err := env.contentSvc.ListQuestionSubmissions(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	question, err := env.contentSvc.ApproveQuestionSubmission(ctx, "admin", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "technical", question.Type)

	pending, err = env.contentSvc.ListQuestionSubmissions(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	questions, err := env.contentSvc.ListQuestions(ctx, "technical", 0)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, question.ID, questions[0].ID)

	_, err = env.contentSvc.ApproveQuestionSubmission(ctx, "admin", sub.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestContentService_ApproveRequiresFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	incomplete := &model.QuestionSubmission{Type: "hr", Question: "Why us?", SubmittedBy: "u1"}
	require.NoError(t, env.content.CreateQuestionSubmission(ctx, incomplete))

	_, err := env.contentSvc.ApproveQuestionSubmission(ctx, "admin", incomplete.ID)
	requireStatus(t, err, http.StatusBadRequest)

	pending, err := env.contentSvc.ListQuestionSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, env.contentSvc.RejectQuestionSubmission(ctx, "admin", incomplete.ID))
	requireStatus(t, env.contentSvc.RejectQuestionSubmission(ctx, "admin", incomplete.ID), http.StatusNotFound)
}

func TestContentService_QuizReviewFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := dto.SubmitQuizRequest{
		Title:   "Google Technical Round",
		Company: "Google",
		Type:    "technical",
		Questions: []dto.QuizQuestion{
			{Text: "Binary search complexity?", Options: []string{"O(n)", "O(log n)"}, CorrectIndex: 1},
		},
	}

	bad := req
	bad.Questions = []dto.QuizQuestion{{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: 2}}
	_, err := env.contentSvc.SubmitQuiz(ctx, "u1", bad)
	requireStatus(t, err, http.StatusBadRequest)

	sub, err := env.contentSvc.SubmitQuiz(ctx, "u1", req)
	require.NoError(t, err)

	summary, err := env.contentSvc.ApproveQuizSubmission(ctx, "admin", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.QuestionCount)

	quizzes, err := env.contentSvc.ListQuizzes(ctx, "", "google")
	require.NoError(t, err)
	require.Len(t, quizzes, 1)

	quiz, err := env.contentSvc.GetQuiz(ctx, summary.ID)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, []string{"O(n)", "O(log n)"}, quiz.Questions[0].Options)

	_, err = env.contentSvc.GetQuiz(ctx, "missing")
	requireStatus(t, err, http.StatusNotFound)
}

func TestContentService_ListQuestionsRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.contentSvc.ListQuestions(context.Background(), "sales", 10)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCheckQuizQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.QuizQuestion
		wantErr   bool
	}{
		{name: "valid", questions: []model.QuizQuestion{{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: 0}}},
		{name: "empty", questions: nil, wantErr: true},
		{name: "no text", questions: []model.QuizQuestion{{Options: []string{"a", "b"}}}, wantErr: true},
		{name: "one option", questions: []model.QuizQuestion{{Text: "Q", Options: []string{"a"}}}, wantErr: true},
		{name: "negative index", questions: []model.QuizQuestion{{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: -1}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkQuizQuestions(tt.questions)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
