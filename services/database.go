package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cadetforge/arena_api/model"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// DatabaseService owns the gorm connection. DB_DRIVER picks postgres
// (default) or sqlite.
type DatabaseService struct {
	context.DefaultService
	db *gorm.DB

	driver     string
	dsn        string
	maxRetries int
}

const DATABASE_SVC = "database_svc"

// Id returns Service ID
func (ds DatabaseService) Id() string {
	return DATABASE_SVC
}

// Db Access to raw gorm db
func (ds DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Configure(ctx *context.Context) error {
	driver, dsn, err := DatabaseConfigFromEnv()
	if err != nil {
		return err
	}
	ds.driver = driver
	ds.dsn = dsn

	ds.maxRetries = 10
	if ds.driver == DriverSqlite {
		ds.maxRetries = 1
	}

	return ds.DefaultService.Configure(ctx)
}

// DatabaseConfigFromEnv resolves the driver and DSN from DB_DRIVER and the
// driver's own variables.
func DatabaseConfigFromEnv() (driver, dsn string, err error) {
	driver = strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = DriverPostgres
	}

	switch driver {
	case DriverSqlite:
		dsn = os.Getenv("DB_DATABASE")
		if dsn == "" {
			dsn = "arena.db"
		}
	case DriverPostgres:
		dsn = postgresDSN()
	default:
		return "", "", fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return driver, dsn, nil
}

func postgresDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	env := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		env("DB_HOST", "localhost"),
		env("DB_USER", "postgres"),
		env("DB_PASSWORD", "postgres"),
		env("DB_NAME", "arena"),
		env("DB_PORT", "5432"),
		env("DB_SSLMODE", "disable"),
		env("DB_TIMEZONE", "UTC"),
	)
}

func Dialector(driver, dsn string) gorm.Dialector {
	if driver == DriverSqlite {
		return sqlite.Open(dsn)
	}
	return postgres.Open(dsn)
}

// Start opens the connection, retrying with exponential backoff, and
// migrates the schema.
func (ds *DatabaseService) Start() (err error) {
	retryDelay := time.Second

	for attempt := 1; attempt <= ds.maxRetries; attempt++ {
		log.WithFields(log.Fields{"driver": ds.driver, "attempt": attempt}).Info("Connecting to database")

		ds.db, err = gorm.Open(Dialector(ds.driver, ds.dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					break
				}
			} else {
				err = dbErr
			}
		}

		if attempt == ds.maxRetries {
			log.WithError(err).Errorf("Failed to connect to database after %d attempts", ds.maxRetries)
			return err
		}

		log.WithError(err).Warnf("Database connection failed, retrying in %v", retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	if ds.driver == DriverSqlite {
		// sqlite serialises writers; one connection avoids "database is locked".
		if sqlDB, err := ds.db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	if err = Migrate(ds.db); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return err
	}

	log.Info("Database connected and migrated successfully")
	return nil
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProgress{},
		&model.Question{},
		&model.QuestionSubmission{},
		&model.Flashcard{},
		&model.MockQuiz{},
		&model.QuizSubmission{},
		&model.MockAttempt{},
		&model.Reference{},
	)
}

func (ds *DatabaseService) Shutdown() {
	if ds.db == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		sqlDB.Close()
	}
}

// HandleError classifies and logs a database error. The returned error keeps
// the cause in its chain.
func (ds *DatabaseService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value violates unique constraint"):
		statusCode = http.StatusConflict
		errorType = "UNIQUE_CONSTRAINT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	case strings.Contains(msg, "no such table"),
		strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		statusCode = http.StatusInternalServerError
		errorType = "SCHEMA_ERROR"
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "database is locked"):
		statusCode = http.StatusServiceUnavailable
		errorType = "DATABASE_CONNECTION_ERROR"
	default:
		statusCode = http.StatusInternalServerError
		errorType = "INTERNAL_ERROR"
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       msg,
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}
