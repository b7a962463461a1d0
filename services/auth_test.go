package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/model"
	"github.com/cadetforge/arena_api/shared"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.users, NewJWTService("test-secret", time.Hour))
}

func TestAuthService_RegisterLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	reg, err := svc.Register(ctx, dto.RegisterRequest{Email: " Cadet@Example.com ", Password: "correct-horse"})
	require.NoError(t, err)

	p := env.progressOf(t, reg.UserID)
	assert.Zero(t, p.XP)
	assert.Zero(t, p.Streak.Count)
	assert.Nil(t, p.Campaign)

	_, err = svc.Register(ctx, dto.RegisterRequest{Email: "cadet@example.com", Password: "another-pass"})
	requireStatus(t, err, http.StatusConflict)

	login, err := svc.Login(ctx, dto.LoginRequest{Email: "CADET@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.User.ID)
	assert.Equal(t, shared.DefaultDisplayName, login.User.DisplayName)
	assert.Equal(t, model.RoleUser, login.User.Role)
	assert.NotNil(t, login.User.LastLoginAt)

	claims, err := svc.jwtSvc.VerifyJWTToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "cadet@example.com", Password: "wrong-password"})
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()
	uid := env.register(t, "p@example.com", "Before")

	info, err := svc.UpdateProfile(ctx, uid, dto.UpdateProfileRequest{DisplayName: " After ", Avatar: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Equal(t, "After", info.DisplayName)
	assert.Equal(t, "data:image/png;base64,AAAA", info.Avatar)

	_, err = svc.UpdateProfile(ctx, uid, dto.UpdateProfileRequest{Avatar: "https://example.com/a.png"})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.GetProfile(ctx, "ghost")
	requireStatus(t, err, http.StatusNotFound)
}

func TestAuthService_Middleware(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", svc.RequiredAuth(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(shared.UserID).(string))
	})
	app.Get("/admin", svc.RequiredAuth(), svc.RequireRole(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	userToken, err := svc.jwtSvc.ToJWT("u1", model.RoleUser)
	require.NoError(t, err)
	adminToken, err := svc.jwtSvc.ToJWT("a1", model.RoleAdmin)
	require.NoError(t, err)
	foreign, err := NewJWTService("other-secret", time.Hour).ToJWT("u1", model.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		path   string
		header string
		status int
	}{
		{path: "/me", header: "", status: http.StatusUnauthorized},
		{path: "/me", header: "Token " + userToken, status: http.StatusUnauthorized},
		{path: "/me", header: "Bearer " + foreign, status: http.StatusUnauthorized},
		{path: "/me", header: "Bearer " + userToken, status: http.StatusOK},
		{path: "/admin", header: "Bearer " + userToken, status: http.StatusForbidden},
		{path: "/admin", header: "Bearer " + adminToken, status: http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tt.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tt.status, resp.StatusCode, "%s %q", tt.path, tt.header)
	}
}
