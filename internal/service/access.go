// Package service contains the business logic for calendars, availability,
// sharing, friends and statistics.
package service

import (
	"context"

	"daygrid/internal/models"
	"daygrid/internal/repository"
)

// Action is a requested operation on a calendar-scoped resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionShare  Action = "share"
)

// AccessService decides whether a principal may perform an action on a
// calendar or one of its child resources. It is a pure decision function
// over current store state and performs no mutations.
type AccessService struct {
	calendarRepo repository.CalendarRepository
	shareRepo    repository.ShareRepository
}

// NewAccessService returns a new AccessService.
func NewAccessService(calendarRepo repository.CalendarRepository, shareRepo repository.ShareRepository) *AccessService {
	return &AccessService{
		calendarRepo: calendarRepo,
		shareRepo:    shareRepo,
	}
}

// Authorize resolves the resource to its owning calendar and applies the
// permission rules:
//
//   - the calendar owner may do everything;
//   - without a share, every action is denied, including read;
//   - any share level grants read; edit and admin additionally grant
//     write/delete of calendar contents;
//   - sharing is owner-only regardless of grants, as is deleting the
//     calendar itself (deleting child entities follows the write rule).
//
// A nil return means allowed. Denials are FORBIDDEN errors; a vanished
// calendar is NOT_FOUND, never conflated with a denial.
func (s *AccessService) Authorize(ctx context.Context, principalID uint, resource models.CalendarScoped, action Action) error {
	calendar, err := s.calendarRepo.GetByID(ctx, resource.OwningCalendarID())
	if err != nil {
		return err
	}

	if calendar.OwnerID == principalID {
		return nil
	}

	if action == ActionShare {
		return models.NewForbiddenError("Only the calendar owner can share this calendar")
	}
	if _, isCalendar := resource.(*models.Calendar); isCalendar && action == ActionDelete {
		return models.NewForbiddenError("Only the calendar owner can delete this calendar")
	}

	share, err := s.shareRepo.GetByCalendarAndUser(ctx, calendar.ID, principalID)
	if err != nil {
		return err
	}
	if share == nil {
		return models.NewForbiddenError("You don't have access to this calendar")
	}

	switch action {
	case ActionRead:
		return nil
	case ActionWrite, ActionDelete:
		if share.Permission.CanWrite() {
			return nil
		}
		return models.NewForbiddenError("You don't have permission to modify this calendar")
	default:
		return models.NewForbiddenError("Unknown action")
	}
}
