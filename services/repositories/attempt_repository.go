package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

// AttemptRepository stores submitted mock quiz attempts and serves the
// history, leaderboard and analytics reads.
type AttemptRepository struct {
	BaseRepository
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *AttemptRepository) CreateAttempt(ctx context.Context, attempt *model.MockAttempt) error {
	if attempt.ID == "" {
		attempt.ID = newID()
	}
	return ds.conn(ctx).Create(attempt).Error
}

func (ds *AttemptRepository) GetAttempt(ctx context.Context, id string) (*model.MockAttempt, error) {
	var attempt model.MockAttempt
	if err := ds.conn(ctx).Where("id = ?", id).First(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (ds *AttemptRepository) ListByUser(ctx context.Context, userID string) ([]model.MockAttempt, error) {
	var attempts []model.MockAttempt
	if err := ds.conn(ctx).Where("user_id = ?", userID).Order("submitted_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (ds *AttemptRepository) ListAll(ctx context.Context) ([]model.MockAttempt, error) {
	var attempts []model.MockAttempt
	if err := ds.conn(ctx).Order("submitted_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// ListByCompany matches the company name case-insensitively.
func (ds *AttemptRepository) ListByCompany(ctx context.Context, company string) ([]model.MockAttempt, error) {
	var attempts []model.MockAttempt
	if err := ds.conn(ctx).Where("LOWER(company) = LOWER(?)", company).Order("submitted_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
