package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

type ReferenceRepository struct {
	BaseRepository
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ReferenceRepository) CreateReference(ctx context.Context, ref *model.Reference) error {
	if ref.ID == "" {
		ref.ID = newID()
	}
	if ref.CreatedAt.IsZero() {
		ref.CreatedAt = time.Now()
	}
	return ds.conn(ctx).Create(ref).Error
}

func (ds *ReferenceRepository) GetReference(ctx context.Context, id string) (*model.Reference, error) {
	var ref model.Reference
	if err := ds.conn(ctx).Where("id = ?", id).First(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListByUser returns the user's references, newest first.
func (ds *ReferenceRepository) ListByUser(ctx context.Context, userID string) ([]model.Reference, error) {
	var refs []model.Reference
	if err := ds.conn(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

func (ds *ReferenceRepository) DeleteReference(ctx context.Context, id string) error {
	return ds.conn(ctx).Where("id = ?", id).Delete(&model.Reference{}).Error
}
