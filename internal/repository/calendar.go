package repository

import (
	"context"
	"errors"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// CalendarRepository defines the interface for calendar data operations
type CalendarRepository interface {
	Create(ctx context.Context, calendar *models.Calendar) error
	GetByID(ctx context.Context, id uint) (*models.Calendar, error)
	Update(ctx context.Context, calendar *models.Calendar) error
	Delete(ctx context.Context, id uint) error
	ListVisible(ctx context.Context, userID uint) ([]models.Calendar, error)
}

// calendarRepository implements CalendarRepository
type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(ctx context.Context, calendar *models.Calendar) error {
	if err := r.db.WithContext(ctx).Create(calendar).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *calendarRepository) GetByID(ctx context.Context, id uint) (*models.Calendar, error) {
	var calendar models.Calendar
	if err := readDB(r.db).WithContext(ctx).Preload("Owner").First(&calendar, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Calendar", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &calendar, nil
}

func (r *calendarRepository) Update(ctx context.Context, calendar *models.Calendar) error {
	if err := r.db.WithContext(ctx).Save(calendar).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the calendar and its events, availability entries and
// shares. The association deletes are explicit so the cascade does not
// depend on foreign-key enforcement being enabled.
func (r *calendarRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Select("Events", "Availabilities", "Shares").
		Delete(&models.Calendar{ID: id}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListVisible returns the union of calendars owned by the user and calendars
// shared with the user, deduplicated by identity.
func (r *calendarRepository) ListVisible(ctx context.Context, userID uint) ([]models.Calendar, error) {
	var calendars []models.Calendar
	if err := readDB(r.db).WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ? OR id IN (?)",
			userID,
			r.db.Model(&models.CalendarShare{}).Select("calendar_id").Where("user_id = ?", userID),
		).
		Order("created_at ASC").
		Find(&calendars).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return calendars, nil
}
