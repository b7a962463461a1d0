package services

import (
	stdctx "context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/cadetforge/arena_api/shared"
)

const (
	RateLimitAI       = "ai"
	RateLimitLogin    = "login"
	RateLimitRegister = "register"

	defaultAIRateLimit = 20
)

type windowCounter interface {
	IncrementWindow(ctx stdctx.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimitService counts requests per identifier in fixed redis windows.
type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	counter windowCounter
}

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
}

type rateLimitInfo struct {
	Limit     int
	Remaining int
	ResetTime time.Time
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	aiLimit, err := strconv.Atoi(os.Getenv("AI_RATE_LIMIT"))
	if err != nil || aiLimit <= 0 {
		aiLimit = defaultAIRateLimit
	}
	svc.configs = defaultRateLimitConfigs(aiLimit)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.counter = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func NewRateLimitService(counter windowCounter, aiLimit int) *RateLimitService {
	return &RateLimitService{counter: counter, configs: defaultRateLimitConfigs(aiLimit)}
}

func defaultRateLimitConfigs(aiLimit int) map[string]*RateLimitConfig {
	return map[string]*RateLimitConfig{
		RateLimitAI: {
			EndpointType: RateLimitAI,
			MaxRequests:  aiLimit,
			WindowSize:   time.Hour,
			Description:  "AI explanations per user",
		},
		RateLimitLogin: {
			EndpointType: RateLimitLogin,
			MaxRequests:  10,
			WindowSize:   15 * time.Minute,
			Description:  "Login attempts rate limit",
		},
		RateLimitRegister: {
			EndpointType: RateLimitRegister,
			MaxRequests:  5,
			WindowSize:   15 * time.Minute,
			Description:  "Registration rate limit",
		},
	}
}

func (svc *RateLimitService) config(endpointType string) (*RateLimitConfig, bool) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	cfg, ok := svc.configs[endpointType]
	return cfg, ok
}

// IsAllowed counts one request for identifier and reports whether it fits in
// the current window.
func (svc *RateLimitService) IsAllowed(ctx stdctx.Context, identifier, endpointType string) (bool, *rateLimitInfo, error) {
	cfg, ok := svc.config(endpointType)
	if !ok {
		return true, nil, nil
	}

	key := fmt.Sprintf("ratelimit:%s:%s", endpointType, identifier)
	count, ttl, err := svc.counter.IncrementWindow(ctx, key, cfg.WindowSize)
	if err != nil {
		return false, nil, err
	}
	if ttl <= 0 {
		ttl = cfg.WindowSize
	}

	remaining := cfg.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	info := &rateLimitInfo{
		Limit:     cfg.MaxRequests,
		Remaining: remaining,
		ResetTime: time.Now().Add(ttl),
	}
	return count <= int64(cfg.MaxRequests), info, nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// RateLimit limits an endpoint by client IP.
func (svc *RateLimitService) RateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return svc.check(c, endpointType, c.IP())
	}
}

// UserBasedRateLimit limits an endpoint per authenticated user, falling back
// to the client IP.
func (svc *RateLimitService) UserBasedRateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier, _ := c.Locals(shared.UserID).(string)
		if identifier == "" {
			identifier = c.IP()
		}
		return svc.check(c, endpointType, identifier)
	}
}

func (svc *RateLimitService) check(c *fiber.Ctx, endpointType, identifier string) error {
	allowed, info, err := svc.IsAllowed(c.UserContext(), identifier, endpointType)
	if err != nil {
		// Counter errors fail open.
		log.WithError(err).WithField("endpoint", endpointType).Warn("Rate limit check failed")
		return c.Next()
	}

	addRateLimitHeaders(c, info)
	if !allowed {
		return handleRateLimitExceeded(c, endpointType, info)
	}
	return c.Next()
}

func addRateLimitHeaders(c *fiber.Ctx, info *rateLimitInfo) {
	if info == nil {
		return
	}
	c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}

func handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *rateLimitInfo) error {
	retryAfter := int(time.Until(info.ResetTime).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Set("Retry-After", strconv.Itoa(retryAfter))

	message := rateLimitMessage(endpointType)
	return shared.ResponseJSON(c, http.StatusTooManyRequests, message, fiber.Map{
		"error":       "Rate limit exceeded",
		"retry_after": retryAfter,
	})
}

func rateLimitMessage(endpointType string) string {
	switch endpointType {
	case RateLimitAI:
		return "Too many AI requests. Please try again later."
	case RateLimitLogin:
		return "Too many login attempts. Please try again later."
	case RateLimitRegister:
		return "Too many registration attempts. Please try again later."
	}
	return "Too many requests. Please try again later."
}
