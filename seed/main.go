package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cadetforge/arena_api/seed/seeders"
	"github.com/cadetforge/arena_api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, questions, flashcards, quizzes, admin")
		dsnFlag  = flag.String("db", "", "Database DSN (overrides DB_DATABASE / DATABASE_URL)")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	driver, dsn, err := services.DatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid database configuration: %v", err)
	}
	if *dsnFlag != "" {
		dsn = *dsnFlag
	}

	db, err := gorm.Open(services.Dialector(driver, dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to %s database", driver)

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		err = mainSeeder.SeedAll()
	case "questions":
		err = seeders.NewQuestionSeeder(db).SeedQuestions()
	case "flashcards":
		err = seeders.NewFlashcardSeeder(db).SeedFlashcards()
	case "quizzes":
		err = seeders.NewQuizSeeder(db).SeedQuizzes()
	case "admin":
		err = seeders.NewAdminSeeder(db).SeedAdmin()
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'questions', 'flashcards', 'quizzes' or 'admin'", *seedType)
	}
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding operation completed successfully!")
}

func showHelp() {
	log.Println(`
Database seeding tool for the arena API

Usage: go run ./seed [flags]

Flags:
  -type string
        Type of seeding to perform (default "all")
        Options: all, questions, flashcards, quizzes, admin
  -db string
        Database DSN (overrides DB_DATABASE / DATABASE_URL)
  -help
        Show this help message

Environment Variables:
  DB_DRIVER       - postgres (default) or sqlite
  DB_DATABASE     - sqlite file (default: arena.db)
  DATABASE_URL    - postgres DSN, or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME/DB_PORT
  ADMIN_EMAIL     - admin account to create with -type=admin
  ADMIN_PASSWORD  - its password
`)
}
