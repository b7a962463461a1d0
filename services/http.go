package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/cadetforge/arena_api/docs"
	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/services/handlers"
	"github.com/cadetforge/arena_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc        *AuthService
	progressSvc    *ProgressService
	attemptSvc     *AttemptService
	contentSvc     *ContentService
	leaderboardSvc *LeaderboardService
	referenceSvc   *ReferenceService
	explainSvc     *ExplainService
	rateLimitSvc   *RateLimitService
	monitoringSvc  *MonitoringService

	port           int
	trustedProxies []string
	app            *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	for _, proxy := range strings.Split(os.Getenv("TRUSTED_PROXIES"), ",") {
		if proxy = strings.TrimSpace(proxy); proxy != "" {
			svc.trustedProxies = append(svc.trustedProxies, proxy)
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.attemptSvc = svc.Service(ATTEMPT_SVC).(*AttemptService)
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.leaderboardSvc = svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	svc.referenceSvc = svc.Service(REFERENCE_SVC).(*ReferenceService)
	svc.explainSvc = svc.Service(EXPLAIN_SVC).(*ExplainService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	docs.SwaggerInfo.BasePath = ""
	svc.app = svc.newApp()

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// appConfig builds the fiber config. c.IP() reads X-Forwarded-For only when
// the peer is one of trustedProxies; otherwise it is the socket address.
func appConfig(trustedProxies []string) fiber.Config {
	return fiber.Config{
		AppName:                 SERVICE_NAME,
		ErrorHandler:            ErrorHandler,
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		BodyLimit:               MaxReferenceSize + 1024*1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trustedProxies,
		EnableIPValidation:      true,
	}
}

func (svc *HttpService) newApp() *fiber.App {
	app := fiber.New(appConfig(svc.trustedProxies))

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if svc.monitoringSvc != nil {
		app.Use(MonitoringMiddleware(svc.monitoringSvc))
	}

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	svc.registerRoutes(app.Group("/api/v1"))
	return app
}

func (svc *HttpService) registerRoutes(v1 fiber.Router) {
	authHandler := handlers.NewAuthHandler(svc.authSvc)
	userHandler := handlers.NewUserHandler(svc.authSvc, svc.progressSvc)
	practiceHandler := handlers.NewPracticeHandler(svc.progressSvc, svc.attemptSvc)
	contentHandler := handlers.NewContentHandler(svc.contentSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(svc.leaderboardSvc)
	referenceHandler := handlers.NewReferenceHandler(svc.referenceSvc)
	aiHandler := handlers.NewAIHandler(svc.explainSvc)
	adminHandler := handlers.NewAdminHandler(svc.contentSvc, svc.attemptSvc, svc.leaderboardSvc)

	v1.Get("/ping", svc.ping)

	v1.Post("/register", svc.rateLimitSvc.RateLimit(RateLimitRegister), authHandler.Register)
	v1.Post("/login", svc.rateLimitSvc.RateLimit(RateLimitLogin), authHandler.Login)

	auth := v1.Group("", svc.authSvc.RequiredAuth())

	auth.Get("/user/profile", userHandler.GetUserProfile)
	auth.Put("/user/profile", userHandler.UpdateUserProfile)
	auth.Get("/user/progress", userHandler.GetUserProgress)
	auth.Get("/user/campaign", userHandler.GetCampaign)

	auth.Post("/drills/answer", practiceHandler.AnswerDrill)
	auth.Post("/mock/result", practiceHandler.SubmitMockResult)
	auth.Post("/mock/attempts", practiceHandler.SubmitAttempt)
	auth.Get("/mock/attempts", practiceHandler.GetAttemptHistory)
	auth.Get("/mock/attempts/:id", practiceHandler.ReviewAttempt)

	auth.Get("/questions", contentHandler.GetQuestions)
	auth.Get("/flashcards", contentHandler.GetFlashcards)
	auth.Get("/quizzes", contentHandler.GetQuizzes)
	auth.Get("/quizzes/:id", contentHandler.GetQuiz)
	auth.Post("/submissions/questions", contentHandler.SubmitQuestion)
	auth.Post("/submissions/quizzes", contentHandler.SubmitQuiz)

	auth.Get("/leaderboard", leaderboardHandler.GetGlobalLeaderboard)
	auth.Get("/leaderboard/company/:company", leaderboardHandler.GetCompanyLeaderboard)

	auth.Get("/references", referenceHandler.GetReferences)
	auth.Post("/references", referenceHandler.UploadReference)
	auth.Delete("/references/:id", referenceHandler.DeleteReference)

	ai := auth.Group("/ai", svc.rateLimitSvc.UserBasedRateLimit(RateLimitAI))
	ai.Post("/explain-answer", aiHandler.ExplainAnswer)
	ai.Post("/summarize", aiHandler.Summarize)

	admin := auth.Group("/admin", svc.authSvc.RequireRole(model.RoleAdmin))
	admin.Get("/submissions/questions", adminHandler.GetQuestionSubmissions)
	admin.Post("/submissions/questions/:id/approve", adminHandler.ApproveQuestionSubmission)
	admin.Delete("/submissions/questions/:id", adminHandler.RejectQuestionSubmission)
	admin.Get("/submissions/quizzes", adminHandler.GetQuizSubmissions)
	admin.Post("/submissions/quizzes/:id/approve", adminHandler.ApproveQuizSubmission)
	admin.Delete("/submissions/quizzes/:id", adminHandler.RejectQuizSubmission)
	admin.Get("/attempts", adminHandler.GetAttempts)
	admin.Get("/analytics/companies", adminHandler.GetCompanyAnalytics)
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")
	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

// ErrorHandler renders every error returned by a handler as a shared.Response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, message := errorStatus(err)

	var data interface{}
	if appErr, ok := shared.GetAppError(err); ok {
		data = appErr.Data
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"path":   c.Path(),
			"method": c.Method(),
		}).Error("Request failed")
	}
	return shared.ResponseJSON(c, status, message, data)
}

// errorStatus maps an error to its HTTP status and client message.
func errorStatus(err error) (int, string) {
	if appErr, ok := shared.GetAppError(err); ok {
		return appErr.StatusCode, appErr.Message
	}

	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, ledger.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, ledger.ErrConflict):
		return http.StatusConflict, "Progress was updated concurrently, please retry"
	case errors.Is(err, ledger.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, "Progress store unavailable"
	case errors.Is(err, ledger.ErrInvalidAward), errors.Is(err, ledger.ErrUnknownCategory):
		return http.StatusBadRequest, "Bad Request"
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	}
	return http.StatusInternalServerError, "Internal Server Error"
}
