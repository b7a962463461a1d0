package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

type QuizSeeder struct {
	db *gorm.DB
}

func NewQuizSeeder(db *gorm.DB) *QuizSeeder {
	return &QuizSeeder{db: db}
}

// SeedQuizzes adds the starter company mock quizzes, matching on title.
func (s *QuizSeeder) SeedQuizzes() error {
	for _, quiz := range starterQuizzes() {
		var count int64
		if err := s.db.Model(&model.MockQuiz{}).Where("title = ?", quiz.Title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Quiz %q already exists, skipping", quiz.Title)
			continue
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		quiz.ID = id.String()
		quiz.CreatedBy = "system"
		quiz.CreatedAt = time.Now()
		if err := s.db.Create(&quiz).Error; err != nil {
			log.Printf("Error creating quiz %q: %v", quiz.Title, err)
			return err
		}
		log.Printf("Created quiz: %s", quiz.Title)
	}

	log.Println("Quiz seeding completed successfully")
	return nil
}

func starterQuizzes() []model.MockQuiz {
	return []model.MockQuiz{
		{
			Title:   "Google SWE Intern Mock",
			Company: "Google",
			Role:    "SWE Intern",
			Type:    "technical",
			Questions: []model.QuizQuestion{
				{Text: "What is the time complexity of binary search?", Options: []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"}, CorrectIndex: 1},
				{Text: "Which data structure is used in BFS?", Options: []string{"Stack", "Queue", "Heap", "Set"}, CorrectIndex: 1},
			},
		},
		{
			Title:   "Amazon Backend Intern Mock",
			Company: "Amazon",
			Role:    "Backend Intern",
			Type:    "technical",
			Questions: []model.QuizQuestion{
				{Text: "Which HTTP method is idempotent?", Options: []string{"POST", "PATCH", "PUT", "CONNECT"}, CorrectIndex: 2},
				{Text: "Which database is best for key-value access?", Options: []string{"Postgres", "MongoDB", "Redis", "MySQL"}, CorrectIndex: 2},
			},
		},
		{
			Title:       "Microsoft Technical Round",
			Company:     "Microsoft",
			Role:        "SDE Intern",
			Type:        "technical",
			Description: "Common fundamentals questions",
			Questions: []model.QuizQuestion{
				{Text: "What is a closure?", Options: []string{"Function inside function", "Access to outer scope variables", "Memory leak", "Runtime error"}, CorrectIndex: 1},
				{Text: "Which structure gives O(1) average lookup by key?", Options: []string{"Linked list", "Hash map", "Binary heap", "Sorted array"}, CorrectIndex: 1},
			},
		},
	}
}
