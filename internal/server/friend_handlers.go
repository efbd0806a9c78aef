package server

import (
	"daygrid/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequestFriend handles POST /api/friends/:userId. Repeated requests for the
// same user return the existing edge with 200 instead of erroring.
func (s *Server) RequestFriend(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	friend, created, err := s.friendSvc.Request(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(friend)
}

// GetFriends handles GET /api/friends
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendSvc.FriendsOf(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(friends)
}

// RemoveFriend handles DELETE /api/friends/:id
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.friendSvc.Remove(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
