package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/model"
)

var statsColumns = map[ledger.Category]string{
	ledger.CategoryAptitude:  "stats_aptitude",
	ledger.CategoryTechnical: "stats_technical",
	ledger.CategoryHR:        "stats_hr",
}

// ProgressRepository is the gorm backed ledger.Store.
type ProgressRepository struct {
	BaseRepository
}

var _ ledger.Store = (*ProgressRepository)(nil)

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProgressRepository) Load(ctx context.Context, userID string) (*ledger.Progress, error) {
	var row model.UserProgress
	if err := ds.conn(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return toProgress(&row), nil
}

func (ds *ProgressRepository) ReplaceCampaign(ctx context.Context, userID string, campaign ledger.Campaign, expectedRev int64) error {
	raw, err := sonic.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("encode campaign: %w", err)
	}

	return ds.compareAndSwap(ctx, userID, "campaign_rev", expectedRev, map[string]interface{}{
		"campaign": datatypes.JSON(raw),
	})
}

func (ds *ProgressRepository) ReplaceStreak(ctx context.Context, userID string, streak ledger.Streak, expectedRev int64) error {
	var lastActive *string
	if streak.LastActive != "" {
		lastActive = &streak.LastActive
	}

	return ds.compareAndSwap(ctx, userID, "streak_rev", expectedRev, map[string]interface{}{
		"streak":      streak.Count,
		"last_active": lastActive,
	})
}

// AddXP increments in SQL, so concurrent awards never lose each other.
func (ds *ProgressRepository) AddXP(ctx context.Context, userID string, award ledger.Award) error {
	if err := award.Validate(); err != nil {
		return err
	}

	updates := map[string]interface{}{
		"xp":         gorm.Expr("xp + ?", award.XP),
		"updated_at": time.Now(),
	}
	if award.Count > 0 {
		col := statsColumns[award.Category]
		updates[col] = gorm.Expr(col+" + ?", award.Count)
	}

	res := ds.conn(ctx).Model(&model.UserProgress{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrUserNotFound
	}
	return nil
}

func (ds *ProgressRepository) compareAndSwap(ctx context.Context, userID, revColumn string, expectedRev int64, updates map[string]interface{}) error {
	updates[revColumn] = gorm.Expr(revColumn + " + 1")
	updates["updated_at"] = time.Now()

	res := ds.conn(ctx).Model(&model.UserProgress{}).
		Where("user_id = ? AND "+revColumn+" = ?", userID, expectedRev).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := ds.conn(ctx).Model(&model.UserProgress{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return ledger.ErrUserNotFound
	}
	return ledger.ErrConflict
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ledger.ErrUserNotFound
	}
	return fmt.Errorf("%w: %w", ledger.ErrPersistenceUnavailable, err)
}

func toProgress(row *model.UserProgress) *ledger.Progress {
	p := ledger.NewProgress(row.UserID)
	p.XP = row.XP
	p.Streak.Count = row.Streak
	if row.LastActive != nil {
		p.Streak.LastActive = *row.LastActive
	}
	p.Stats[ledger.CategoryAptitude] = row.StatsAptitude
	p.Stats[ledger.CategoryTechnical] = row.StatsTechnical
	p.Stats[ledger.CategoryHR] = row.StatsHR
	p.CampaignRev = row.CampaignRev
	p.StreakRev = row.StreakRev

	raw := bytes.TrimSpace(row.Campaign)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return p
	}

	var campaign ledger.Campaign
	if err := sonic.Unmarshal(raw, &campaign); err != nil {
		// An unreadable campaign is treated as missing and rebuilt.
		return p
	}
	p.Campaign = &campaign
	return p
}
