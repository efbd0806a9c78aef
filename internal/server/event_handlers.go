package server

import (
	"time"

	"daygrid/internal/models"
	"daygrid/internal/service"

	"github.com/gofiber/fiber/v2"
)

type eventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

func (r eventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

// CreateEvent handles POST /api/calendars/:id/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	calendarID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validate.Struct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	event, err := s.eventSvc.Create(c.Context(), currentUserID(c), calendarID, req.toInput())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetCalendarEvents handles GET /api/calendars/:id/events
func (s *Server) GetCalendarEvents(c *fiber.Ctx) error {
	calendarID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	events, err := s.eventSvc.ListByCalendar(c.Context(), currentUserID(c), calendarID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(events)
}

// GetEvents handles GET /api/events. With ?calendar_id= the listing is
// scoped and access-checked; without it every event is returned.
func (s *Server) GetEvents(c *fiber.Ctx) error {
	ctx := c.Context()

	if calendarID := c.QueryInt("calendar_id", 0); calendarID > 0 {
		events, err := s.eventSvc.ListByCalendar(ctx, currentUserID(c), uint(calendarID))
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		return c.JSON(events)
	}

	p := parsePagination(c, 100)
	events, err := s.eventSvc.ListAll(ctx, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(events)
}

// GetEvent handles GET /api/events/:id
func (s *Server) GetEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventSvc.Get(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(event)
}

// UpdateEvent handles PUT /api/events/:id
func (s *Server) UpdateEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventSvc.Update(c.Context(), currentUserID(c), id, req.toInput())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(event)
}

// DeleteEvent handles DELETE /api/events/:id
func (s *Server) DeleteEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.eventSvc.Delete(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
