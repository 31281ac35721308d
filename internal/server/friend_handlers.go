package server

import (
	"babel/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendFriendRequest handles POST /api/users/friend-request/:id
// @Summary Send friend request
// @Description Send a friend request to the user identified by :id
// @Tags users
// @Produce json
// @Param id path int true "Recipient user ID"
// @Success 201 {object} models.FriendRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/friend-request/{id} [post]
// @Security ApiKeyAuth
func (s *Server) SendFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, err := s.friendService.SendRequest(c.UserContext(), userID, targetID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// AcceptFriendRequest handles POST /api/users/friend-request/:id/accept
// @Summary Accept friend request
// @Description Accept a pending friend request addressed to the caller
// @Tags users
// @Produce json
// @Param id path int true "Friend request ID"
// @Success 200 {object} models.FriendRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/friend-request/{id}/accept [post]
// @Security ApiKeyAuth
func (s *Server) AcceptFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	req, err := s.friendService.AcceptRequest(c.UserContext(), userID, requestID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(req)
}

// RejectFriendRequest handles DELETE /api/users/friend-request/:id
// @Summary Reject or cancel friend request
// @Description Recipient rejects, sender withdraws; the request is removed either way
// @Tags users
// @Param id path int true "Friend request ID"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/friend-request/{id} [delete]
// @Security ApiKeyAuth
func (s *Server) RejectFriendRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.friendService.RejectRequest(c.UserContext(), userID, requestID); err != nil {
		return models.RespondWithDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFriendRequests handles GET /api/users/friend-requests
// @Summary Friend request inbox
// @Description Pending requests addressed to the caller plus the caller's requests that were accepted
// @Tags users
// @Produce json
// @Success 200 {object} object{incoming=[]models.FriendRequest,accepted=[]models.FriendRequest}
// @Failure 401 {object} models.ErrorResponse
// @Router /users/friend-requests [get]
// @Security ApiKeyAuth
func (s *Server) GetFriendRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	ctx := c.UserContext()

	incoming, err := s.friendService.ListIncomingPending(ctx, userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	accepted, err := s.friendService.ListAcceptedSentBy(ctx, userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}

	if incoming == nil {
		incoming = []models.FriendRequest{}
	}
	if accepted == nil {
		accepted = []models.FriendRequest{}
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"incoming": incoming,
		"accepted": accepted,
	})
}

// GetOutgoingFriendRequests handles GET /api/users/outgoing-friend-requests
// @Summary Sent friend requests
// @Description Pending requests the caller has sent
// @Tags users
// @Produce json
// @Success 200 {array} models.FriendRequest
// @Failure 401 {object} models.ErrorResponse
// @Router /users/outgoing-friend-requests [get]
// @Security ApiKeyAuth
func (s *Server) GetOutgoingFriendRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	outgoing, err := s.friendService.ListOutgoingPending(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithDomainError(c, err)
	}
	if outgoing == nil {
		outgoing = []models.FriendRequest{}
	}
	return c.Status(fiber.StatusOK).JSON(outgoing)
}
