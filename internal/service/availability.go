package service

import (
	"context"
	"time"

	"daygrid/internal/models"
	"daygrid/internal/repository"

	"gorm.io/gorm"
)

// AvailabilitySubmission carries the fields of a new availability marker.
type AvailabilitySubmission struct {
	StartTime   time.Time
	EndTime     *time.Time
	IsBusy      bool
	Title       string
	Description string
}

// AvailabilityService reconciles availability submissions: the domain models
// one availability status per person per day per calendar, so a new
// submission supersedes every prior record in its day range.
type AvailabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	access           *AccessService
	db               *gorm.DB
}

// NewAvailabilityService returns a new AvailabilityService.
func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository, access *AccessService, db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		access:           access,
		db:               db,
	}
}

const dayFormat = "2006-01-02"

// Submit replaces the principal's availability for every day the submitted
// interval touches and inserts the new record, in one transaction. Unlike
// events, submitting availability only requires read-level access to the
// calendar.
func (s *AvailabilityService) Submit(ctx context.Context, principalID, calendarID uint, sub AvailabilitySubmission) (*models.Availability, error) {
	if err := s.access.Authorize(ctx, principalID,
		&models.Availability{CalendarID: calendarID}, ActionRead); err != nil {
		return nil, err
	}

	endTime := sub.StartTime
	if sub.EndTime != nil {
		endTime = *sub.EndTime
		if endTime.Before(sub.StartTime) {
			return nil, models.NewValidationError("end_time must not be before start_time")
		}
	}

	startDate := sub.StartTime.Format(dayFormat)
	endDate := endTime.Format(dayFormat)

	record := &models.Availability{
		UserID:      principalID,
		CalendarID:  calendarID,
		StartTime:   sub.StartTime,
		EndTime:     endTime,
		IsBusy:      sub.IsBusy,
		Title:       sub.Title,
		Description: sub.Description,
	}

	// Delete-then-insert must be atomic so concurrent submissions for the
	// same day leave exactly one surviving record (last committed wins).
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND calendar_id = ? AND DATE(start_time) BETWEEN ? AND ?",
				principalID, calendarID, startDate, endDate).
			Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.availabilityRepo.GetByID(ctx, record.ID)
}

// Aggregated returns every user's availability for a calendar. The caller
// needs read access; the composed view spans all participants.
func (s *AvailabilityService) Aggregated(ctx context.Context, principalID, calendarID uint) ([]models.Availability, error) {
	if err := s.access.Authorize(ctx, principalID,
		&models.Availability{CalendarID: calendarID}, ActionRead); err != nil {
		return nil, err
	}
	return s.availabilityRepo.ListByCalendar(ctx, calendarID)
}

// Remove deletes a single availability record. Owners and edit/admin shares
// may delete any record on the calendar; the record's author may always
// delete their own.
func (s *AvailabilityService) Remove(ctx context.Context, principalID, availabilityID uint) error {
	record, err := s.availabilityRepo.GetByID(ctx, availabilityID)
	if err != nil {
		return err
	}

	if record.UserID != principalID {
		if err := s.access.Authorize(ctx, principalID, record, ActionDelete); err != nil {
			return err
		}
	}

	return s.availabilityRepo.Delete(ctx, record.ID)
}
