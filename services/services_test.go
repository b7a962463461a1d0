package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
	"github.com/cadetforge/arena_api/shared"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// testEnv wires the domain services over an in-memory sqlite database.
type testEnv struct {
	db          *gorm.DB
	clock       *testClock
	users       *repositories.UserRepository
	content     *repositories.ContentRepository
	attempts    *repositories.AttemptRepository
	progress    *ProgressService
	leaderboard *LeaderboardService
	attemptSvc  *AttemptService
	contentSvc  *ContentService
}

// Wednesday 2026-10-14, slot 3 of the week starting Monday 2026-10-12.
var wednesday = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	env := &testEnv{
		db:       db,
		clock:    &testClock{now: wednesday},
		users:    repositories.NewUserRepository(db),
		content:  repositories.NewContentRepository(db),
		attempts: repositories.NewAttemptRepository(db),
	}

	l := ledger.New(repositories.NewProgressRepository(db), ledger.WithClock(env.clock.Now))
	env.progress = NewProgressService(l, env.content)
	env.leaderboard = NewLeaderboardService(nil, env.attempts, env.users)
	env.attemptSvc = NewAttemptService(env.content, env.attempts, env.progress, env.leaderboard)
	env.contentSvc = NewContentService(env.content)
	return env
}

func (env *testEnv) register(t *testing.T, email, name string) string {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "x", DisplayName: name, Role: model.RoleUser}
	require.NoError(t, env.users.CreateUserWithProgress(context.Background(), u))
	return u.ID
}

func (env *testEnv) question(t *testing.T, category, answer string) string {
	t.Helper()
	q := &model.Question{
		Type:     category,
		Question: "Q for " + answer,
		Options:  []string{answer, "other"},
		Answer:   answer,
	}
	require.NoError(t, env.content.CreateQuestion(context.Background(), q))
	return q.ID
}

func (env *testEnv) progressOf(t *testing.T, userID string) *ledger.Progress {
	t.Helper()
	p, err := env.progress.Ledger().Progress(context.Background(), userID)
	require.NoError(t, err)
	return p
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode)
}
