package seeders

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

// AdminSeeder handles seeding admin users
type AdminSeeder struct {
	db *gorm.DB
}

func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

// SeedAdmin creates the admin account from ADMIN_EMAIL and ADMIN_PASSWORD
// when no admin exists yet.
func (s *AdminSeeder) SeedAdmin() error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing model.User
	err := s.db.Where("role = ?", model.RoleAdmin).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists, skipping admin seeding")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	now := time.Now()
	admin := model.User{
		ID:           id.String(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Admin",
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.UserProgress{UserID: admin.ID}).Error; err != nil {
			return err
		}
		log.Printf("Created admin user: %s", admin.Email)
		return nil
	})
}
