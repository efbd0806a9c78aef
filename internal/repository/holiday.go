package repository

import (
	"context"
	"time"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// HolidayRepository defines the interface for holiday data operations
type HolidayRepository interface {
	ListByCountryAndYear(ctx context.Context, country string, year int) ([]models.Holiday, error)
}

// holidayRepository implements HolidayRepository
type holidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository creates a new holiday repository
func NewHolidayRepository(db *gorm.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) ListByCountryAndYear(ctx context.Context, country string, year int) ([]models.Holiday, error) {
	var holidays []models.Holiday
	q := readDB(r.db).WithContext(ctx).Where("country = ?", country)
	if year > 0 {
		q = q.Where("date >= ? AND date < ?", yearStart(year), yearStart(year+1))
	}
	if err := q.Order("date ASC").Find(&holidays).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return holidays, nil
}
