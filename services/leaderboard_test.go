package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/shared"
)

func attempt(userID, company string, score, total int) model.MockAttempt {
	return model.MockAttempt{
		UserID:  userID,
		Company: company,
		Score:   score,
		Total:   total,
		Status:  shared.AttemptStatusCompleted,
	}
}

func TestRankAttempts(t *testing.T) {
	entries := RankAttempts([]model.MockAttempt{
		attempt("u1", "Google", 8, 10),
		attempt("u1", "Amazon", 6, 10),
		attempt("u2", "Google", 9, 10),
		attempt("u3", "Google", 0, 0),
		attempt("", "Google", 10, 10),
	})

	require.Len(t, entries, 3)
	assert.Equal(t, dto.LeaderboardEntry{Rank: 1, UserID: "u2", Avg: 90, Attempts: 1}, entries[0])
	assert.Equal(t, dto.LeaderboardEntry{Rank: 2, UserID: "u1", Avg: 70, Attempts: 2}, entries[1])
	assert.Equal(t, dto.LeaderboardEntry{Rank: 3, UserID: "u3", Avg: 0, Attempts: 1}, entries[2])
}

func TestRankAttempts_RoundingAndTies(t *testing.T) {
	entries := RankAttempts([]model.MockAttempt{
		attempt("a", "", 2, 3),
		attempt("b", "", 1, 8),
		attempt("c", "", 5, 10),
		attempt("d", "", 1, 2),
		attempt("d", "", 1, 2),
	})

	require.Len(t, entries, 4)
	assert.Equal(t, "a", entries[0].UserID)
	assert.Equal(t, 67, entries[0].Avg)
	// Equal averages rank the user with more attempts first.
	assert.Equal(t, "d", entries[1].UserID)
	assert.Equal(t, "c", entries[2].UserID)
	assert.Equal(t, 50, entries[2].Avg)
	assert.Equal(t, "b", entries[3].UserID)
	assert.Equal(t, 13, entries[3].Avg)
}

func TestRankAttempts_Empty(t *testing.T) {
	assert.Empty(t, RankAttempts(nil))
}

func TestAnalyzeCompanies(t *testing.T) {
	abandoned := attempt("u9", "Google", 0, 10)
	abandoned.Status = "abandoned"

	rows := AnalyzeCompanies([]model.MockAttempt{
		attempt("u1", "Google", 2, 2),
		attempt("u2", "Google", 1, 2),
		attempt("u1", "Amazon", 1, 3),
		attempt("u3", "Microsoft", 0, 0),
		abandoned,
	})

	assert.Equal(t, []dto.CompanyAnalytics{
		{Company: "Amazon", Avg: 33, Attempts: 1},
		{Company: "Google", Avg: 75, Attempts: 2},
		{Company: "Microsoft", Avg: 0, Attempts: 1},
	}, rows)
}

func TestLeaderboardService_Boards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ada := env.register(t, "ada@example.com", "Ada")
	bob := env.register(t, "bob@example.com", "Bob")
	cy := env.register(t, "cy@example.com", "")

	seed := []model.MockAttempt{
		attempt(ada, "Google", 9, 10),
		attempt(bob, "google", 5, 10),
		attempt(bob, "Amazon", 10, 10),
		attempt(cy, "Amazon", 2, 10),
	}
	for i := range seed {
		seed[i].SubmittedAt = wednesday.Add(time.Duration(i) * time.Minute)
		require.NoError(t, env.attempts.CreateAttempt(ctx, &seed[i]))
	}

	global, err := env.leaderboard.GetGlobalLeaderboard(ctx, 1, cy)
	require.NoError(t, err)
	require.Len(t, global.Entries, 1)
	assert.Equal(t, "Ada", global.Entries[0].Name)
	assert.Equal(t, 90, global.Entries[0].Avg)
	require.NotNil(t, global.CurrentUser)
	assert.Equal(t, 3, global.CurrentUser.Rank)
	assert.Equal(t, shared.DefaultDisplayName, global.CurrentUser.Name)

	google, err := env.leaderboard.GetCompanyLeaderboard(ctx, "GOOGLE", 50, ada)
	require.NoError(t, err)
	assert.Equal(t, "GOOGLE", google.Company)
	require.Len(t, google.Entries, 2)
	assert.Equal(t, ada, google.Entries[0].UserID)
	assert.Equal(t, "Bob", google.Entries[1].Name)
	assert.Equal(t, 50, google.Entries[1].Avg)

	empty, err := env.leaderboard.GetCompanyLeaderboard(ctx, "  ", 50, ada)
	require.NoError(t, err)
	assert.Empty(t, empty.Entries)
	assert.Nil(t, empty.CurrentUser)
}
