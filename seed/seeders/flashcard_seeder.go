package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

type FlashcardSeeder struct {
	db *gorm.DB
}

func NewFlashcardSeeder(db *gorm.DB) *FlashcardSeeder {
	return &FlashcardSeeder{db: db}
}

func (s *FlashcardSeeder) SeedFlashcards() error {
	created := 0
	for _, card := range starterFlashcards() {
		var count int64
		if err := s.db.Model(&model.Flashcard{}).Where("front = ?", card.Front).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		card.ID = id.String()
		card.CreatedAt = time.Now()
		if err := s.db.Create(&card).Error; err != nil {
			log.Printf("Error creating flashcard %q: %v", card.Front, err)
			return err
		}
		created++
	}

	log.Printf("Flashcard seeding completed, %d created", created)
	return nil
}

func starterFlashcards() []model.Flashcard {
	return []model.Flashcard{
		{Topic: "aptitude", Front: "Formula for percentage increase?", Back: "((New - Old) / Old) x 100"},
		{Topic: "aptitude", Front: "Formula for simple interest?", Back: "(P x R x T) / 100"},
		{Topic: "aptitude", Front: "Average = ?", Back: "Total sum of values / Number of values"},
		{Topic: "aptitude", Front: "Speed = ?", Back: "Distance / Time"},
		{Topic: "aptitude", Front: "Work formula?", Back: "Work = Rate x Time"},

		{Topic: "technical", Front: "What is encapsulation?", Back: "Binding data and methods together while hiding internal state."},
		{Topic: "technical", Front: "Stack vs Queue?", Back: "Stack follows LIFO; Queue follows FIFO."},
		{Topic: "technical", Front: "What is recursion?", Back: "A function calling itself to solve a problem in smaller steps."},
		{Topic: "technical", Front: "What is a database index?", Back: "A structure that speeds up data retrieval operations."},
		{Topic: "technical", Front: "What is REST?", Back: "An architectural style for building stateless web APIs."},

		{Topic: "hr", Front: "Tell me about yourself, structure?", Back: "Intro, education, skills, goals (30-45 seconds)."},
		{Topic: "hr", Front: "Why should we hire you?", Back: "Show value: skills, attitude and alignment with the company."},
		{Topic: "hr", Front: "Strength vs weakness?", Back: "Mention a real weakness and how you're improving it."},
		{Topic: "hr", Front: "Where do you see yourself in 5 years?", Back: "Focus on growth, learning, and contribution."},
		{Topic: "hr", Front: "How do you handle failure?", Back: "Reflect, learn, adapt, and move forward."},
	}
}
