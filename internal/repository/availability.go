package repository

import (
	"context"
	"errors"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// AvailabilityRepository defines the interface for availability data operations
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Availability, error)
	ListByCalendar(ctx context.Context, calendarID uint) ([]models.Availability, error)
	Delete(ctx context.Context, id uint) error
}

// availabilityRepository implements AvailabilityRepository
type availabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) GetByID(ctx context.Context, id uint) (*models.Availability, error) {
	var availability models.Availability
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&availability, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Availability", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &availability, nil
}

// ListByCalendar returns every user's availability for a calendar, the
// aggregated view composed for shared calendars.
func (r *availabilityRepository) ListByCalendar(ctx context.Context, calendarID uint) ([]models.Availability, error) {
	var availabilities []models.Availability
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("calendar_id = ?", calendarID).
		Order("start_time ASC").
		Find(&availabilities).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return availabilities, nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Availability{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
