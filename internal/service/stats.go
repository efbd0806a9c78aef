package service

import (
	"context"
	"time"

	"daygrid/internal/repository"
)

// activeWindow is how far back a login still counts as "active".
const activeWindow = 30 * 24 * time.Hour

// UserStats holds aggregate user counts.
type UserStats struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
}

// CalendarStats holds aggregate calendar counts.
type CalendarStats struct {
	TotalCalendars  int64 `json:"total_calendars"`
	SharedCalendars int64 `json:"shared_calendars"`
}

// EventStats holds aggregate event counts.
type EventStats struct {
	TotalEvents    int64 `json:"total_events"`
	UpcomingEvents int64 `json:"upcoming_events"`
}

// AvailabilityStats holds aggregate availability counts.
type AvailabilityStats struct {
	TotalMarkers int64 `json:"total_markers"`
	BusyMarkers  int64 `json:"busy_markers"`
}

// FriendshipStats holds the friendship edge count.
type FriendshipStats struct {
	Total int64 `json:"total"`
}

// Dashboard combines every aggregate for the admin analytics view.
type Dashboard struct {
	Users        UserStats         `json:"users"`
	Calendars    CalendarStats     `json:"calendars"`
	Events       EventStats        `json:"events"`
	Availability AvailabilityStats `json:"availability"`
	Friendships  FriendshipStats   `json:"friendships"`
}

// StatsService is the read-only reporting surface behind the admin panel.
type StatsService struct {
	statsRepo repository.StatsRepository
	now       func() time.Time
}

// NewStatsService returns a new StatsService.
func NewStatsService(statsRepo repository.StatsRepository) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		now:       time.Now,
	}
}

// Users returns total and recently-active user counts.
func (s *StatsService) Users(ctx context.Context) (*UserStats, error) {
	total, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.statsRepo.CountActiveUsers(ctx, s.now().Add(-activeWindow))
	if err != nil {
		return nil, err
	}
	return &UserStats{TotalUsers: total, ActiveUsers: active}, nil
}

// Calendars returns total and shared-at-least-once calendar counts.
func (s *StatsService) Calendars(ctx context.Context) (*CalendarStats, error) {
	total, err := s.statsRepo.CountCalendars(ctx)
	if err != nil {
		return nil, err
	}
	shared, err := s.statsRepo.CountSharedCalendars(ctx)
	if err != nil {
		return nil, err
	}
	return &CalendarStats{TotalCalendars: total, SharedCalendars: shared}, nil
}

// Events returns total and upcoming event counts.
func (s *StatsService) Events(ctx context.Context) (*EventStats, error) {
	total, err := s.statsRepo.CountEvents(ctx)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.statsRepo.CountUpcomingEvents(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return &EventStats{TotalEvents: total, UpcomingEvents: upcoming}, nil
}

// DashboardStats composes the full analytics dashboard.
func (s *StatsService) DashboardStats(ctx context.Context) (*Dashboard, error) {
	users, err := s.Users(ctx)
	if err != nil {
		return nil, err
	}
	calendars, err := s.Calendars(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}

	totalMarkers, err := s.statsRepo.CountAvailabilities(ctx)
	if err != nil {
		return nil, err
	}
	busyMarkers, err := s.statsRepo.CountBusyAvailabilities(ctx)
	if err != nil {
		return nil, err
	}
	friendships, err := s.statsRepo.CountFriendships(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:        *users,
		Calendars:    *calendars,
		Events:       *events,
		Availability: AvailabilityStats{TotalMarkers: totalMarkers, BusyMarkers: busyMarkers},
		Friendships:  FriendshipStats{Total: friendships},
	}, nil
}
