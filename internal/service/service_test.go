package service

import (
	"errors"
	"testing"
	"time"

	"daygrid/internal/database"
	"daygrid/internal/models"
	"daygrid/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fixture bundles a fresh in-memory store with every service wired up.
type fixture struct {
	db            *gorm.DB
	access        *AccessService
	calendars     *CalendarService
	events        *EventService
	availability  *AvailabilityService
	friends       *FriendService
	calendarRepo  repository.CalendarRepository
	shareRepo     repository.ShareRepository
	availRepo     repository.AvailabilityRepository
	eventRepo     repository.EventRepository
	friendRepo    repository.FriendRepository
	userRepo      repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	calendarRepo := repository.NewCalendarRepository(db)
	shareRepo := repository.NewShareRepository(db)
	eventRepo := repository.NewEventRepository(db)
	availRepo := repository.NewAvailabilityRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	userRepo := repository.NewUserRepository(db)
	access := NewAccessService(calendarRepo, shareRepo)

	return &fixture{
		db:           db,
		access:       access,
		calendars:    NewCalendarService(calendarRepo, shareRepo, userRepo, access, db),
		events:       NewEventService(eventRepo, access),
		availability: NewAvailabilityService(availRepo, access, db),
		friends:      NewFriendService(friendRepo, userRepo),
		calendarRepo: calendarRepo,
		shareRepo:    shareRepo,
		availRepo:    availRepo,
		eventRepo:    eventRepo,
		friendRepo:   friendRepo,
		userRepo:     userRepo,
	}
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) calendar(t *testing.T, owner *models.User, name string) *models.Calendar {
	t.Helper()
	calendar := &models.Calendar{OwnerID: owner.ID, Name: name}
	require.NoError(t, f.db.Create(calendar).Error)
	return calendar
}

func (f *fixture) share(t *testing.T, calendar *models.Calendar, user *models.User, permission models.SharePermission) *models.CalendarShare {
	t.Helper()
	share := &models.CalendarShare{
		CalendarID: calendar.ID,
		UserID:     user.ID,
		Permission: permission,
	}
	require.NoError(t, f.db.Create(share).Error)
	return share
}

func (f *fixture) event(t *testing.T, calendar *models.Calendar, title string) *models.Event {
	t.Helper()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	event := &models.Event{
		CalendarID: calendar.ID,
		Title:      title,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	}
	require.NoError(t, f.db.Create(event).Error)
	return event
}

// requireCode asserts the error carries the given application error code.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}
