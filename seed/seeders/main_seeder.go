package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs every seeder. Each one skips rows that already exist, so it
// is safe to run again.
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := NewQuestionSeeder(s.db).SeedQuestions(); err != nil {
		log.Printf("Question seeding failed: %v", err)
		return err
	}

	if err := NewFlashcardSeeder(s.db).SeedFlashcards(); err != nil {
		log.Printf("Flashcard seeding failed: %v", err)
		return err
	}

	if err := NewQuizSeeder(s.db).SeedQuizzes(); err != nil {
		log.Printf("Quiz seeding failed: %v", err)
		return err
	}

	if err := NewAdminSeeder(s.db).SeedAdmin(); err != nil {
		log.Printf("Admin seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}
