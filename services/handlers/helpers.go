package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/shared"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// parseBody decodes the JSON body into req and runs its validation.
func parseBody(c *fiber.Ctx, req dto.Validator) error {
	if err := c.BodyParser(req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return shared.NewValidationError(err, dto.FormatValidationErrors(err))
	}
	return nil
}

func currentUser(c *fiber.Ctx) string {
	userID, _ := c.Locals(shared.UserID).(string)
	return userID
}

func currentRole(c *fiber.Ctx) string {
	role, _ := c.Locals(shared.UserRole).(string)
	return role
}

func queryLimit(c *fiber.Ctx) int {
	limit := defaultLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}
	return limit
}
