package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cadetforge/arena_api/dto"
	"github.com/cadetforge/arena_api/shared"
)

type UserHandler struct {
	authSvc     AuthServiceInterface
	progressSvc ProgressServiceInterface
}

func NewUserHandler(authSvc AuthServiceInterface, progressSvc ProgressServiceInterface) *UserHandler {
	return &UserHandler{
		authSvc:     authSvc,
		progressSvc: progressSvc,
	}
}

// @Summary Get user profile
// @Tags user
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/user/profile [get]
func (h *UserHandler) GetUserProfile(c *fiber.Ctx) error {
	profile, err := h.authSvc.GetProfile(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", profile)
}

// @Summary Update user profile
// @Description Update display name and avatar
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param updateRequest body dto.UpdateProfileRequest true "User profile"
// @Success 200 {object} shared.Response{data=dto.UserInfo}
// @Router /api/v1/user/profile [put]
func (h *UserHandler) UpdateUserProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	profile, err := h.authSvc.UpdateProfile(c.UserContext(), currentUser(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Profile updated successfully", profile)
}

// @Summary Get user progress
// @Description XP, level, streak, stats and this week's campaign
// @Tags user
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ProgressResponse}
// @Router /api/v1/user/progress [get]
func (h *UserHandler) GetUserProgress(c *fiber.Ctx) error {
	progress, err := h.progressSvc.GetProgress(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", progress)
}

// @Summary Get weekly campaign
// @Description Returns this week's campaign, creating it when missing or stale
// @Tags user
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=ledger.Campaign}
// @Router /api/v1/user/campaign [get]
func (h *UserHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.progressSvc.GetCampaign(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", campaign)
}
