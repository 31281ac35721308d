package server

import (
	"babel/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetRecommendedUsers handles GET /api/users
// @Summary Recommended partners
// @Description List onboarded users the caller is not already connected to
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users [get]
// @Security ApiKeyAuth
func (s *Server) GetRecommendedUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	excludePending := s.config.FlagEnabled("recommend_exclude_pending")
	users, err := s.userService.RecommendUsers(c.UserContext(), userID, excludePending)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// GetMyFriends handles GET /api/users/friends
// @Summary My friends
// @Description List the caller's established friends
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/friends [get]
// @Security ApiKeyAuth
func (s *Server) GetMyFriends(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	friends, err := s.friendService.ListFriends(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	if friends == nil {
		friends = []models.User{}
	}
	return c.Status(fiber.StatusOK).JSON(friends)
}
