package repository

import (
	"context"
	"errors"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// ShareRepository defines the interface for calendar share data operations
type ShareRepository interface {
	Create(ctx context.Context, share *models.CalendarShare) error
	GetByCalendarAndUser(ctx context.Context, calendarID, userID uint) (*models.CalendarShare, error)
	ListByCalendar(ctx context.Context, calendarID uint) ([]models.CalendarShare, error)
	UpdatePermission(ctx context.Context, shareID uint, permission models.SharePermission) error
	Delete(ctx context.Context, shareID uint) error
}

// shareRepository implements ShareRepository
type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new calendar share repository
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.CalendarShare) error {
	if err := r.db.WithContext(ctx).Create(share).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByCalendarAndUser returns the share for (calendar, user), or nil when
// no grant exists. Absence of a grant is a normal state, not an error.
func (r *shareRepository) GetByCalendarAndUser(ctx context.Context, calendarID, userID uint) (*models.CalendarShare, error) {
	var share models.CalendarShare
	if err := readDB(r.db).WithContext(ctx).
		Where("calendar_id = ? AND user_id = ?", calendarID, userID).
		First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &share, nil
}

func (r *shareRepository) ListByCalendar(ctx context.Context, calendarID uint) ([]models.CalendarShare, error) {
	var shares []models.CalendarShare
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("calendar_id = ?", calendarID).
		Order("created_at ASC").
		Find(&shares).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return shares, nil
}

func (r *shareRepository) UpdatePermission(ctx context.Context, shareID uint, permission models.SharePermission) error {
	if err := r.db.WithContext(ctx).
		Model(&models.CalendarShare{}).
		Where("id = ?", shareID).
		Update("permission", permission).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shareRepository) Delete(ctx context.Context, shareID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.CalendarShare{}, shareID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
