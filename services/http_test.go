package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadetforge/arena_api/docs"
	"github.com/cadetforge/arena_api/ledger"
	"github.com/cadetforge/arena_api/shared"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "app error", err: shared.NewForbiddenError(nil, "Not your attempt"), status: http.StatusForbidden},
		{name: "unknown user", err: fmt.Errorf("load: %w", ledger.ErrUserNotFound), status: http.StatusNotFound},
		{name: "conflict", err: ledger.ErrConflict, status: http.StatusConflict},
		{name: "store down", err: ledger.ErrPersistenceUnavailable, status: http.StatusServiceUnavailable},
		{name: "invalid award", err: ledger.ErrInvalidAward, status: http.StatusBadRequest},
		{name: "unknown category", err: ledger.ErrUnknownCategory, status: http.StatusBadRequest},
		{name: "fiber error", err: fiber.ErrMethodNotAllowed, status: http.StatusMethodNotAllowed},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, message)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return fmt.Errorf("complete today: %w", ledger.ErrConflict)
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return shared.NewValidationError(errors.New("bad"), []string{"email is required"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "email is required")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

var routeParam = regexp.MustCompile(`:(\w+)`)

func TestSwaggerDocMatchesRoutes(t *testing.T) {
	app := (&HttpService{}).newApp()

	var doc struct {
		Paths map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, sonic.UnmarshalString(docs.SwaggerInfo.ReadDoc(), &doc))

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToUpper(method)+" "+path] = true
		}
	}

	served := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		if r.Method == http.MethodHead || strings.HasPrefix(r.Path, "/swagger") || r.Path == "/api/v1/ping" {
			continue
		}
		served[r.Method+" "+routeParam.ReplaceAllString(r.Path, "{$1}")] = true
	}

	assert.Len(t, served, 33)
	assert.Equal(t, served, documented)
}
