package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SubmissionStatusPending = "pending"
)

// Question is a single drill question. Type is one of the ledger categories.
type Question struct {
	ID        string `gorm:"primaryKey"`
	Type      string `gorm:"index;not null"`
	Question  string `gorm:"type:text;not null"`
	Options   datatypes.JSONSlice[string]
	Answer    string `gorm:"not null"`
	Source    string
	CreatedBy string
	CreatedAt time.Time
}

type QuestionSubmission struct {
	ID          string `gorm:"primaryKey"`
	Type        string
	Question    string `gorm:"type:text"`
	Options     datatypes.JSONSlice[string]
	Answer      string
	Source      string
	Status      string `gorm:"index;default:pending"`
	SubmittedBy string `gorm:"index"`
	CreatedAt   time.Time
}

type Flashcard struct {
	ID        string `gorm:"primaryKey"`
	Front     string `gorm:"type:text;not null"`
	Back      string `gorm:"type:text;not null"`
	Topic     string `gorm:"index"`
	CreatedAt time.Time
}

type QuizQuestion struct {
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

type MockQuiz struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Company     string `gorm:"index"`
	Role        string
	Type        string `gorm:"index"`
	Description string `gorm:"type:text"`
	Questions   datatypes.JSONSlice[QuizQuestion]
	CreatedBy   string
	CreatedAt   time.Time
}

type QuizSubmission struct {
	ID          string `gorm:"primaryKey"`
	Title       string
	Company     string
	Role        string
	Type        string
	Description string `gorm:"type:text"`
	Questions   datatypes.JSONSlice[QuizQuestion]
	Status      string `gorm:"index;default:pending"`
	SubmittedBy string `gorm:"index"`
	CreatedAt   time.Time
}

// MockAttempt is one submitted run of a mock quiz. Answers maps question
// index to chosen option index.
type MockAttempt struct {
	ID          string `gorm:"primaryKey"`
	QuizID      string `gorm:"index"`
	QuizTitle   string
	Company     string `gorm:"index"`
	Role        string
	UserID      string `gorm:"index"`
	Answers     datatypes.JSONType[map[int]int]
	Score       int
	Total       int
	Accuracy    float64
	DurationSec int
	Status      string `gorm:"index"`
	SubmittedAt time.Time `gorm:"index"`
}

type Reference struct {
	ID          string `gorm:"primaryKey"`
	UserID      string `gorm:"index;not null"`
	Title       string
	Type        string
	ObjectKey   string `gorm:"not null"`
	ContentType string
	Size        int64
	CreatedAt   time.Time `gorm:"index"`
}
