package server

import (
	"bytes"
	"fmt"
	"time"

	"daygrid/internal/cache"
	"daygrid/internal/middleware"
	"daygrid/internal/models"

	"github.com/emersion/go-ical"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetCalendars handles GET /api/calendars: calendars owned by or shared
// with the caller, deduplicated. The list is cached briefly per user.
func (s *Server) GetCalendars(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var calendars []models.Calendar
	if cache.GetJSON(ctx, cache.VisibleCalendarsKey(userID), &calendars) {
		return c.JSON(calendars)
	}

	calendars, err := s.calendarSvc.VisibleCalendars(ctx, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.SetJSON(ctx, cache.VisibleCalendarsKey(userID), calendars, cache.VisibleCalendarsTTL)
	return c.JSON(calendars)
}

type calendarRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

// CreateCalendar handles POST /api/calendars
func (s *Server) CreateCalendar(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req calendarRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validate.Struct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	calendar, err := s.calendarSvc.Create(ctx, userID, req.Name, req.Description)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateVisibleCalendars(ctx, userID)
	return c.Status(fiber.StatusCreated).JSON(calendar)
}

// GetCalendar handles GET /api/calendars/:id
func (s *Server) GetCalendar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	calendar, err := s.calendarSvc.Get(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(calendar)
}

// UpdateCalendar handles PUT /api/calendars/:id
func (s *Server) UpdateCalendar(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req calendarRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	calendar, err := s.calendarSvc.Update(c.Context(), currentUserID(c), id, req.Name, req.Description)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(calendar)
}

// DeleteCalendar handles DELETE /api/calendars/:id. Owner-only; the store
// cascades to events, availability and shares.
func (s *Server) DeleteCalendar(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	// Captured before deletion so every grantee's cached list is dropped.
	shares, _ := s.shareRepo.ListByCalendar(ctx, id)

	if err := s.calendarSvc.Delete(ctx, userID, id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateVisibleCalendars(ctx, userID)
	for _, share := range shares {
		cache.InvalidateVisibleCalendars(ctx, share.UserID)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetSharedWith handles GET /api/calendars/:id/shared-with
func (s *Server) GetSharedWith(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	shares, err := s.calendarSvc.SharedWith(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(shares)
}

// ShareCalendar handles POST /api/calendars/:id/share. Owner-only;
// re-sharing with the same user overwrites the permission level.
func (s *Server) ShareCalendar(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		UserID     uint   `json:"user_id" validate:"required"`
		Permission string `json:"permission" validate:"share_permission"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validate.Struct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	share, created, err := s.calendarSvc.Share(ctx, currentUserID(c), id,
		req.UserID, models.SharePermission(req.Permission))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateVisibleCalendars(ctx, req.UserID)

	status := fiber.StatusOK
	kind := "updated"
	if created {
		status = fiber.StatusCreated
		kind = "created"
	}
	middleware.ShareUpserts.WithLabelValues(kind).Inc()

	return c.Status(status).JSON(share)
}

// UnshareCalendar handles DELETE /api/calendars/:id/share/:userId
func (s *Server) UnshareCalendar(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.calendarSvc.Unshare(ctx, currentUserID(c), id, targetID); err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateVisibleCalendars(ctx, targetID)
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSharedCalendar handles POST /api/calendars/shared: one call that
// creates a calendar and a view-only grant for the other user atomically.
func (s *Server) CreateSharedCalendar(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	var req struct {
		UserID uint   `json:"user_id" validate:"required"`
		Name   string `json:"name" validate:"max=100"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := s.validate.Struct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	calendar, err := s.calendarSvc.CreateShared(ctx, userID, req.UserID, req.Name)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.InvalidateVisibleCalendars(ctx, userID)
	cache.InvalidateVisibleCalendars(ctx, req.UserID)

	return c.Status(fiber.StatusCreated).JSON(calendar)
}

// ExportCalendarICS handles GET /api/calendars/:id/export.ics, emitting the
// calendar's events as an iCalendar document.
func (s *Server) ExportCalendarICS(c *fiber.Ctx) error {
	ctx := c.Context()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID := currentUserID(c)

	calendar, err := s.calendarSvc.Get(ctx, userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	events, err := s.eventSvc.ListByCalendar(ctx, userID, id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//Daygrid//Calendar Export//EN")
	cal.Props.SetText(ical.PropName, calendar.Name)

	now := time.Now()
	for _, ev := range events {
		item := ical.NewEvent()
		item.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@daygrid", ev.ID))
		item.Props.SetText(ical.PropSummary, ev.Title)
		if ev.Description != "" {
			item.Props.SetText(ical.PropDescription, ev.Description)
		}
		item.Props.SetDateTime(ical.PropDateTimeStamp, now)
		item.Props.SetDateTime(ical.PropDateTimeStart, ev.StartTime)
		item.Props.SetDateTime(ical.PropDateTimeEnd, ev.EndTime)
		cal.Children = append(cal.Children, item.Component)
	}

	// An exported calendar with zero events still needs one component to be
	// a valid document; emit a placeholder marker.
	if len(events) == 0 {
		placeholder := ical.NewEvent()
		placeholder.Props.SetText(ical.PropUID, uuid.New().String())
		placeholder.Props.SetText(ical.PropSummary, calendar.Name)
		placeholder.Props.SetDateTime(ical.PropDateTimeStamp, now)
		placeholder.Props.SetDateTime(ical.PropDateTimeStart, now)
		placeholder.Props.SetDateTime(ical.PropDateTimeEnd, now)
		cal.Children = append(cal.Children, placeholder.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="calendar-%d.ics"`, calendar.ID))
	return c.Send(buf.Bytes())
}
