package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// CreateUserWithProgress inserts the account and its empty progress record in
// one transaction, so every user always has a progress row.
func (ds *UserRepository) CreateUserWithProgress(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		id, _ := uuid.NewV7()
		user.ID = id.String()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}

	return ds.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&model.UserProgress{UserID: user.ID}).Error
	})
}

func (ds *UserRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := ds.conn(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := ds.conn(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *UserRepository) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := ds.conn(ctx).Model(&model.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (ds *UserRepository) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	res := ds.conn(ctx).Model(&model.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ds *UserRepository) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return ds.conn(ctx).Model(&model.User{}).Where("id = ?", userID).Update("last_login", at).Error
}

// GetDisplayNames returns display names keyed by user id. Unknown ids are
// absent from the map.
func (ds *UserRepository) GetDisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}

	var users []model.User
	if err := ds.conn(ctx).Select("id", "display_name").Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	return names, nil
}

func (ds *UserRepository) HasRole(ctx context.Context, role string) (bool, error) {
	var count int64
	if err := ds.conn(ctx).Model(&model.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
