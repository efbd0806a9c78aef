package repository

import (
	"context"
	"time"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// StatsRepository exposes the aggregate counts consumed by the admin
// statistics surface. All queries are read-only.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountActiveUsers(ctx context.Context, since time.Time) (int64, error)
	CountCalendars(ctx context.Context) (int64, error)
	CountSharedCalendars(ctx context.Context) (int64, error)
	CountEvents(ctx context.Context) (int64, error)
	CountUpcomingEvents(ctx context.Context, from time.Time) (int64, error)
	CountAvailabilities(ctx context.Context) (int64, error)
	CountBusyAvailabilities(ctx context.Context) (int64, error)
	CountFriendships(ctx context.Context) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) count(ctx context.Context, model any, conds ...any) (int64, error) {
	var n int64
	q := readDB(r.db).WithContext(ctx).Model(model)
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *statsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.User{})
}

func (r *statsRepository) CountActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	return r.count(ctx, &models.User{}, "last_login_at >= ?", since)
}

func (r *statsRepository) CountCalendars(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Calendar{})
}

// CountSharedCalendars counts distinct calendars that have at least one share.
func (r *statsRepository) CountSharedCalendars(ctx context.Context) (int64, error) {
	var n int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.CalendarShare{}).
		Distinct("calendar_id").
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *statsRepository) CountEvents(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Event{})
}

func (r *statsRepository) CountUpcomingEvents(ctx context.Context, from time.Time) (int64, error) {
	return r.count(ctx, &models.Event{}, "start_time >= ?", from)
}

func (r *statsRepository) CountAvailabilities(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Availability{})
}

func (r *statsRepository) CountBusyAvailabilities(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Availability{}, "is_busy = ?", true)
}

func (r *statsRepository) CountFriendships(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Friend{})
}
