package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cadetforge/arena_api/model"
)

type QuestionSeeder struct {
	db *gorm.DB
}

func NewQuestionSeeder(db *gorm.DB) *QuestionSeeder {
	return &QuestionSeeder{db: db}
}

// SeedQuestions adds the starter drill questions, matching on question text.
func (s *QuestionSeeder) SeedQuestions() error {
	for _, q := range starterQuestions() {
		var count int64
		if err := s.db.Model(&model.Question{}).Where("question = ?", q.Question).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Question %q already exists, skipping", q.Question)
			continue
		}

		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		q.ID = id.String()
		q.CreatedBy = "system"
		q.CreatedAt = time.Now()
		if err := s.db.Create(&q).Error; err != nil {
			log.Printf("Error creating question %q: %v", q.Question, err)
			return err
		}
		log.Printf("Created question: %s", q.Question)
	}

	log.Println("Question seeding completed successfully")
	return nil
}

func starterQuestions() []model.Question {
	return []model.Question{
		{
			Type:     "aptitude",
			Question: "If 20% of a number is 40, what is the number?",
			Options:  []string{"80", "180", "200", "160"},
			Answer:   "200",
			Source:   "Percentages",
		},
		{
			Type:     "aptitude",
			Question: "A man walks 4 km in 1 hour and cycles 12 km in 1 hour. What is his average speed?",
			Options:  []string{"8 km/hr", "10 km/hr", "9 km/hr", "7 km/hr"},
			Answer:   "8 km/hr",
			Source:   "Speed",
		},
		{
			Type:     "technical",
			Question: "What data structure is used in recursion?",
			Options:  []string{"Queue", "Stack", "Heap", "Array"},
			Answer:   "Stack",
			Source:   "DSA",
		},
		{
			Type:     "technical",
			Question: "What is Big-O notation used for?",
			Options:  []string{"Memory allocation", "Algorithm efficiency", "Compilation", "Syntax checking"},
			Answer:   "Algorithm efficiency",
			Source:   "DSA",
		},
		{
			Type:     "hr",
			Question: "Tell me about yourself.",
			Options:  []string{"Intro", "Background", "Goals", "All of the above"},
			Answer:   "All of the above",
			Source:   "General",
		},
	}
}
