package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/shared"
)

type LeaderboardHandler struct {
	leaderboardSvc LeaderboardServiceInterface
}

func NewLeaderboardHandler(leaderboardSvc LeaderboardServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// @Summary Get global leaderboard
// @Description Users ranked by average mock attempt score
// @Tags leaderboard
// @Produce json
// @Security Bearer
// @Param limit query int false "Limit results (default 50)"
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetGlobalLeaderboard(c *fiber.Ctx) error {
	leaderboard, err := h.leaderboardSvc.GetGlobalLeaderboard(c.UserContext(), queryLimit(c), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", leaderboard)
}

// @Summary Get company leaderboard
// @Tags leaderboard
// @Produce json
// @Security Bearer
// @Param company path string true "Company"
// @Param limit query int false "Limit results (default 50)"
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard/company/{company} [get]
func (h *LeaderboardHandler) GetCompanyLeaderboard(c *fiber.Ctx) error {
	leaderboard, err := h.leaderboardSvc.GetCompanyLeaderboard(c.UserContext(), c.Params("company"), queryLimit(c), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", leaderboard)
}
