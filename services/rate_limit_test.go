package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/shared"
)

type fakeCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (f *fakeCounter) IncrementWindow(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[key]++
	return f.counts[key], window, nil
}

func rateLimitedApp(svc *RateLimitService, trustedProxies ...string) *fiber.App {
	app := fiber.New(appConfig(trustedProxies))
	app.Use(func(c *fiber.Ctx) error {
		if uid := c.Get("X-Test-User"); uid != "" {
			c.Locals(shared.UserID, uid)
		}
		return c.Next()
	})
	app.Post("/ai/explain", svc.UserBasedRateLimit(RateLimitAI), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	app.Post("/login", svc.RateLimit(RateLimitLogin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func aiRequest(user string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/ai/explain", nil)
	req.Header.Set("X-Test-User", user)
	return req
}

func TestRateLimitService_PerUser(t *testing.T) {
	counter := &fakeCounter{}
	app := rateLimitedApp(NewRateLimitService(counter, 2))

	for i := 0; i < 2; i++ {
		resp, err := app.Test(aiRequest("u1"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, err := app.Test(aiRequest("u1"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	resp, err = app.Test(aiRequest("u2"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, int64(3), counter.counts["ratelimit:ai:u1"])
}

func loginFrom(forwardedFor string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, forwardedFor)
	return req
}

func TestRateLimitService_ByIP(t *testing.T) {
	counter := &fakeCounter{}
	app := rateLimitedApp(NewRateLimitService(counter, 20))

	// The test peer is not a trusted proxy, so a forged header per request
	// still lands in one bucket.
	var last int
	for i := 0; i < 11; i++ {
		resp, err := app.Test(loginFrom("203.0.113." + strconv.Itoa(i+1)))
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
	assert.Equal(t, map[string]int64{"ratelimit:login:0.0.0.0": 11}, counter.counts)
}

func TestRateLimitService_TrustedProxyForwardsClientIP(t *testing.T) {
	counter := &fakeCounter{}
	app := rateLimitedApp(NewRateLimitService(counter, 20), "0.0.0.0")

	for i := 0; i < 10; i++ {
		resp, err := app.Test(loginFrom("203.0.113.7, 10.0.0.1"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(loginFrom("198.51.100.2"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(loginFrom("203.0.113.7"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	assert.Equal(t, int64(11), counter.counts["ratelimit:login:203.0.113.7"])
	assert.Equal(t, int64(1), counter.counts["ratelimit:login:198.51.100.2"])
}

func TestRateLimitService_FailsOpen(t *testing.T) {
	app := rateLimitedApp(NewRateLimitService(&fakeCounter{err: errors.New("redis down")}, 1))

	for i := 0; i < 3; i++ {
		resp, err := app.Test(aiRequest("u1"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitService_UnknownEndpoint(t *testing.T) {
	svc := NewRateLimitService(&fakeCounter{}, 1)

	allowed, info, err := svc.IsAllowed(context.Background(), "u1", "upload")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Nil(t, info)
}
