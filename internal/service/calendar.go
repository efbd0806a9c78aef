package service

import (
	"context"
	"fmt"

	"daygrid/internal/models"
	"daygrid/internal/repository"

	"gorm.io/gorm"
)

// CalendarService composes calendar views and owns the share lifecycle.
type CalendarService struct {
	calendarRepo repository.CalendarRepository
	shareRepo    repository.ShareRepository
	userRepo     repository.UserRepository
	access       *AccessService
	db           *gorm.DB
}

// NewCalendarService returns a new CalendarService.
func NewCalendarService(
	calendarRepo repository.CalendarRepository,
	shareRepo repository.ShareRepository,
	userRepo repository.UserRepository,
	access *AccessService,
	db *gorm.DB,
) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		shareRepo:    shareRepo,
		userRepo:     userRepo,
		access:       access,
		db:           db,
	}
}

// VisibleCalendars returns the union of calendars owned by the principal and
// calendars shared with the principal, without duplicates.
func (s *CalendarService) VisibleCalendars(ctx context.Context, principalID uint) ([]models.Calendar, error) {
	return s.calendarRepo.ListVisible(ctx, principalID)
}

// Get returns a calendar the principal can read.
func (s *CalendarService) Get(ctx context.Context, principalID, calendarID uint) (*models.Calendar, error) {
	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, principalID, calendar, ActionRead); err != nil {
		return nil, err
	}
	return calendar, nil
}

// Create creates a calendar owned by the principal.
func (s *CalendarService) Create(ctx context.Context, principalID uint, name, description string) (*models.Calendar, error) {
	if name == "" {
		return nil, models.NewValidationError("Calendar name is required")
	}

	calendar := &models.Calendar{
		OwnerID:     principalID,
		Name:        name,
		Description: description,
	}
	if err := s.calendarRepo.Create(ctx, calendar); err != nil {
		return nil, err
	}
	return s.calendarRepo.GetByID(ctx, calendar.ID)
}

// Update modifies a calendar's name/description; requires write access.
func (s *CalendarService) Update(ctx context.Context, principalID, calendarID uint, name, description string) (*models.Calendar, error) {
	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, principalID, calendar, ActionWrite); err != nil {
		return nil, err
	}

	if name != "" {
		calendar.Name = name
	}
	calendar.Description = description
	if err := s.calendarRepo.Update(ctx, calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// Delete removes a calendar and cascades to its events, availability and
// shares. Owner-only regardless of share grants.
func (s *CalendarService) Delete(ctx context.Context, principalID, calendarID uint) error {
	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return err
	}
	if err := s.access.Authorize(ctx, principalID, calendar, ActionDelete); err != nil {
		return err
	}
	return s.calendarRepo.Delete(ctx, calendarID)
}

// SharedWith lists the share grants on a calendar. Any principal that can
// read the calendar may see who else it is shared with.
func (s *CalendarService) SharedWith(ctx context.Context, principalID, calendarID uint) ([]models.CalendarShare, error) {
	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	if err := s.access.Authorize(ctx, principalID, calendar, ActionRead); err != nil {
		return nil, err
	}
	return s.shareRepo.ListByCalendar(ctx, calendarID)
}

// Share grants or overwrites a permission level for a target user on a
// calendar. Owner-only. The upsert is idempotent: an existing grant has its
// permission overwritten instead of a duplicate row appearing. The returned
// flag reports whether a new grant was created.
func (s *CalendarService) Share(ctx context.Context, principalID, calendarID, targetUserID uint, permission models.SharePermission) (*models.CalendarShare, bool, error) {
	if permission == "" {
		permission = models.ShareViewOnly
	}
	if !permission.Valid() {
		return nil, false, models.NewValidationError("Invalid permission level")
	}

	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return nil, false, err
	}
	if err := s.access.Authorize(ctx, principalID, calendar, ActionShare); err != nil {
		return nil, false, err
	}

	if targetUserID == calendar.OwnerID {
		return nil, false, models.NewValidationError("Cannot share a calendar with its owner")
	}
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, false, err
	}

	existing, err := s.shareRepo.GetByCalendarAndUser(ctx, calendarID, targetUserID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if existing.Permission != permission {
			if err := s.shareRepo.UpdatePermission(ctx, existing.ID, permission); err != nil {
				return nil, false, err
			}
			existing.Permission = permission
		}
		return existing, false, nil
	}

	share := &models.CalendarShare{
		CalendarID: calendarID,
		UserID:     targetUserID,
		Permission: permission,
	}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, false, err
	}
	return share, true, nil
}

// Unshare revokes a grant. Owner-only, like creating one.
func (s *CalendarService) Unshare(ctx context.Context, principalID, calendarID, targetUserID uint) error {
	calendar, err := s.calendarRepo.GetByID(ctx, calendarID)
	if err != nil {
		return err
	}
	if err := s.access.Authorize(ctx, principalID, calendar, ActionShare); err != nil {
		return err
	}

	share, err := s.shareRepo.GetByCalendarAndUser(ctx, calendarID, targetUserID)
	if err != nil {
		return err
	}
	if share == nil {
		return models.NewNotFoundError("CalendarShare", targetUserID)
	}
	return s.shareRepo.Delete(ctx, share.ID)
}

// CreateShared atomically creates a calendar owned by the principal plus a
// view-only grant for the other user. If either insert fails nothing
// persists. The default name is composed from both usernames.
func (s *CalendarService) CreateShared(ctx context.Context, principalID, otherUserID uint, name string) (*models.Calendar, error) {
	if otherUserID == principalID {
		return nil, models.NewValidationError("Cannot create a shared calendar with yourself")
	}

	principal, err := s.userRepo.GetByID(ctx, principalID)
	if err != nil {
		return nil, err
	}
	other, err := s.userRepo.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = fmt.Sprintf("%s & %s", principal.Username, other.Username)
	}

	calendar := &models.Calendar{
		OwnerID: principalID,
		Name:    name,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(calendar).Error; err != nil {
			return err
		}
		share := &models.CalendarShare{
			CalendarID: calendar.ID,
			UserID:     otherUserID,
			Permission: models.ShareViewOnly,
		}
		return tx.Create(share).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.calendarRepo.GetByID(ctx, calendar.ID)
}
