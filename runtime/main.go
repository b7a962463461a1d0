package main

import (
	"os"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"

	"github.com/cadetforge/arena_api/services"
)

// @title Arena API
// @version 1.0
// @description Interview practice progress, campaigns, streaks and leaderboards.
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file found, using system environment variables")
	}

	if level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(level)
	}

	ctx, err := context.NewCtx(
		&services.DatabaseService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MonitoringService{},
		&services.JWTService{},

		&services.AuthService{},
		&services.ProgressService{},
		&services.LeaderboardService{},
		&services.AttemptService{},
		&services.ContentService{},
		&services.ReferenceService{},
		&services.ExplainService{},
		&services.RateLimitService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build service context")
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("Service context stopped")
		return
	}
}
