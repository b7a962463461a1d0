package repositories_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/repositories"
)

func registerUser(t *testing.T, users *repositories.UserRepository, email string) string {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "x", DisplayName: "Cadet"}
	require.NoError(t, users.CreateUserWithProgress(context.Background(), u))
	return u.ID
}

func TestProgressRepository_FreshRecord(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewUserRepository(db)
	repo := repositories.NewProgressRepository(db)
	uid := registerUser(t, users, "a@example.com")

	p, err := repo.Load(context.Background(), uid)
	require.NoError(t, err)

	assert.Equal(t, uid, p.UserID)
	assert.Zero(t, p.XP)
	assert.Equal(t, ledger.Streak{}, p.Streak)
	assert.Nil(t, p.Campaign)
	assert.Equal(t, ledger.NewStats(), p.Stats)
}

func TestProgressRepository_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProgressRepository(db)
	ctx := context.Background()

	_, err := repo.Load(ctx, "ghost")
	assert.ErrorIs(t, err, ledger.ErrUserNotFound)

	err = repo.ReplaceStreak(ctx, "ghost", ledger.Streak{Count: 1, LastActive: "2026-10-14"}, 0)
	assert.ErrorIs(t, err, ledger.ErrUserNotFound)

	err = repo.AddXP(ctx, "ghost", ledger.Award{Source: ledger.SourceDrill, XP: 10})
	assert.ErrorIs(t, err, ledger.ErrUserNotFound)
}

func TestProgressRepository_ReplaceCampaignCAS(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProgressRepository(db)
	uid := registerUser(t, repositories.NewUserRepository(db), "b@example.com")
	ctx := context.Background()

	c := ledger.NewCampaign(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	c.Mark(3)

	require.NoError(t, repo.ReplaceCampaign(ctx, uid, c, 0))

	// Writing against the old revision must fail.
	err := repo.ReplaceCampaign(ctx, uid, c, 0)
	assert.ErrorIs(t, err, ledger.ErrConflict)

	p, err := repo.Load(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, p.Campaign)
	assert.Equal(t, "2026-10-12", p.Campaign.WeekStart)
	assert.True(t, p.Campaign.IsDone(3))
	assert.Len(t, p.Campaign.Days, ledger.SlotCount)
	assert.Equal(t, int64(1), p.CampaignRev)
}

func TestProgressRepository_ReplaceStreak(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProgressRepository(db)
	uid := registerUser(t, repositories.NewUserRepository(db), "c@example.com")
	ctx := context.Background()

	require.NoError(t, repo.ReplaceStreak(ctx, uid, ledger.Streak{Count: 3, LastActive: "2026-10-14"}, 0))

	p, err := repo.Load(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, ledger.Streak{Count: 3, LastActive: "2026-10-14"}, p.Streak)
	assert.Equal(t, int64(1), p.StreakRev)
	assert.Zero(t, p.CampaignRev)

	assert.ErrorIs(t, repo.ReplaceStreak(ctx, uid, ledger.Streak{Count: 9}, 0), ledger.ErrConflict)
}

func TestProgressRepository_AddXP(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProgressRepository(db)
	uid := registerUser(t, repositories.NewUserRepository(db), "d@example.com")
	ctx := context.Background()

	require.NoError(t, repo.AddXP(ctx, uid, ledger.Award{Source: ledger.SourceMockResult, XP: 45, Category: ledger.CategoryHR, Count: 9}))
	require.NoError(t, repo.AddXP(ctx, uid, ledger.Award{Source: ledger.SourceDailyBonus, XP: 50}))

	err := repo.AddXP(ctx, uid, ledger.Award{Source: ledger.SourceDrill, XP: -1})
	assert.ErrorIs(t, err, ledger.ErrInvalidAward)

	p, err := repo.Load(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 95, p.XP)
	assert.Equal(t, 9, p.Stats[ledger.CategoryHR])
	assert.Equal(t, 0, p.Stats[ledger.CategoryAptitude])
}

func TestProgressRepository_NullCampaignIsMissing(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProgressRepository(db)
	uid := registerUser(t, repositories.NewUserRepository(db), "e@example.com")

	require.NoError(t, db.Model(&model.UserProgress{}).Where("user_id = ?", uid).
		Update("campaign", datatypes.JSON("null")).Error)

	p, err := repo.Load(context.Background(), uid)
	require.NoError(t, err)
	assert.Nil(t, p.Campaign)
}

func TestProgressRepository_WithLedger(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProgressRepository(db)
	uid := registerUser(t, repositories.NewUserRepository(db), "f@example.com")
	ctx := context.Background()

	now := func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }
	l := ledger.New(repo, ledger.WithClock(now))

	const workers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		trues int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.CompleteToday(ctx, uid)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				trues++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, trues)

	s, err := l.TouchStreak(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count)

	p, err := repo.Load(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Campaign.CompletedDays())
	assert.True(t, p.Campaign.IsDone(3))
	assert.Equal(t, "2026-10-14", p.Streak.LastActive)
}
