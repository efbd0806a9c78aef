package server

import (
	"daygrid/internal/cache"
	"daygrid/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var user models.User
	if cache.GetJSON(ctx, cache.UserKey(userID), &user) {
		return c.JSON(user)
	}

	found, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.SetJSON(ctx, cache.UserKey(userID), found, cache.UserTTL)
	return c.JSON(found)
}

// GetAllUsers handles GET /api/users. Used by the share and friend pickers.
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.Context()
	p := parsePagination(c, 100)

	users, err := s.userRepo.List(ctx, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(users)
}
