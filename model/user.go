package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string
	Avatar       string `gorm:"type:text"`
	Role         string `gorm:"default:user;index"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProgress is the persisted progress record, one row per user. Category
// counters are separate columns so increments stay atomic in SQL. The
// revision columns guard the campaign and streak fields against lost updates.
type UserProgress struct {
	UserID     string `gorm:"primaryKey"`
	XP         int    `gorm:"column:xp;not null;default:0;index"`
	Streak     int    `gorm:"not null;default:0"`
	LastActive *string
	Campaign   datatypes.JSON

	StatsAptitude  int `gorm:"column:stats_aptitude;not null;default:0"`
	StatsTechnical int `gorm:"column:stats_technical;not null;default:0"`
	StatsHR        int `gorm:"column:stats_hr;not null;default:0"`

	CampaignRev int64 `gorm:"not null;default:0"`
	StreakRev   int64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
