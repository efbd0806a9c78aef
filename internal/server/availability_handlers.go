package server

import (
	"time"

	"daygrid/internal/middleware"
	"daygrid/internal/models"
	"daygrid/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitAvailability handles POST /api/calendars/:id/availability. Any prior
// markers by the caller on the submitted days are replaced.
func (s *Server) SubmitAvailability(c *fiber.Ctx) error {
	calendarID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		StartTime   time.Time  `json:"start_time" validate:"required"`
		EndTime     *time.Time `json:"end_time"`
		IsBusy      *bool      `json:"is_busy"`
		Title       string     `json:"title" validate:"max=200"`
		Description string     `json:"description" validate:"max=2000"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validate.Struct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	isBusy := true
	if req.IsBusy != nil {
		isBusy = *req.IsBusy
	}

	record, err := s.availabilitySvc.Submit(c.Context(), currentUserID(c), calendarID,
		service.AvailabilitySubmission{
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			IsBusy:      isBusy,
			Title:       req.Title,
			Description: req.Description,
		})
	if err != nil {
		middleware.AvailabilitySubmissions.WithLabelValues("error").Inc()
		return models.RespondWithAppError(c, err)
	}

	middleware.AvailabilitySubmissions.WithLabelValues("ok").Inc()
	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetAggregatedAvailability handles GET /api/calendars/:id/availability,
// returning all participants' markers for the calendar.
func (s *Server) GetAggregatedAvailability(c *fiber.Ctx) error {
	calendarID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	records, err := s.availabilitySvc.Aggregated(c.Context(), currentUserID(c), calendarID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(records)
}

// DeleteAvailability handles DELETE /api/availability/:id
func (s *Server) DeleteAvailability(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.availabilitySvc.Remove(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
