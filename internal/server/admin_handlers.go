package server

import (
	"daygrid/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserStats handles GET /api/admin/stats/users
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	stats, err := s.statsSvc.Users(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetCalendarStats handles GET /api/admin/stats/calendars
func (s *Server) GetCalendarStats(c *fiber.Ctx) error {
	stats, err := s.statsSvc.Calendars(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetEventStats handles GET /api/admin/stats/events
func (s *Server) GetEventStats(c *fiber.Ctx) error {
	stats, err := s.statsSvc.Events(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetAnalyticsDashboard handles GET /api/admin/analytics/dashboard
func (s *Server) GetAnalyticsDashboard(c *fiber.Ctx) error {
	dashboard, err := s.statsSvc.DashboardStats(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(dashboard)
}
