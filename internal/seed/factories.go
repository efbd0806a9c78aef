// Package seed provides helpers to create demo and development data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"daygrid/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls the shape of a seed run.
type Options struct {
	Users              int
	CalendarsPerUser   int
	EventsPerCalendar  int
	MarkersPerCalendar int
	MaxDays            int
	Password           string
}

// DefaultOptions returns a reasonable dataset for local development.
func DefaultOptions() Options {
	return Options{
		Users:              10,
		CalendarsPerUser:   2,
		EventsPerCalendar:  8,
		MarkersPerCalendar: 6,
		MaxDays:            60,
		Password:           "Daygrid123",
	}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a bcrypt-hashed password.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(f.opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  fmt.Sprintf("%s_%d", gofakeit.Username(), f.rng.Intn(10000)),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCalendar persists a calendar owned by the given user.
func (f *Factory) CreateCalendar(owner *models.User, overrides ...func(*models.Calendar)) (*models.Calendar, error) {
	calendar := &models.Calendar{
		OwnerID:     owner.ID,
		Name:        fmt.Sprintf("%s %s", gofakeit.HackerAdjective(), gofakeit.NounAbstract()),
		Description: gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(calendar)
	}

	if err := f.db.Create(calendar).Error; err != nil {
		return nil, err
	}
	return calendar, nil
}

// CreateEvent persists a one-to-three hour event at a random time within
// the configured day spread, past or future.
func (f *Factory) CreateEvent(calendar *models.Calendar) (*models.Event, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	daysOff := f.rng.Intn(2*maxDays) - maxDays
	start := time.Now().
		AddDate(0, 0, daysOff).
		Add(time.Duration(8+f.rng.Intn(10)) * time.Hour)

	event := &models.Event{
		CalendarID:  calendar.ID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 6, "\n"),
		StartTime:   start,
		EndTime:     start.Add(time.Duration(1+f.rng.Intn(3)) * time.Hour),
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateAvailability persists a single-day marker for a user on a calendar.
func (f *Factory) CreateAvailability(user *models.User, calendar *models.Calendar) (*models.Availability, error) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	start := time.Now().
		AddDate(0, 0, f.rng.Intn(maxDays)).
		Truncate(time.Hour)

	marker := &models.Availability{
		UserID:     user.ID,
		CalendarID: calendar.ID,
		StartTime:  start,
		EndTime:    start.Add(time.Duration(2+f.rng.Intn(6)) * time.Hour),
		IsBusy:     f.rng.Intn(3) != 0,
		Title:      gofakeit.Sentence(3),
	}
	if err := f.db.Create(marker).Error; err != nil {
		return nil, err
	}
	return marker, nil
}

// CreateShare persists a share grant for a user on a calendar.
func (f *Factory) CreateShare(calendar *models.Calendar, user *models.User, permission models.SharePermission) (*models.CalendarShare, error) {
	share := &models.CalendarShare{
		CalendarID: calendar.ID,
		UserID:     user.ID,
		Permission: permission,
	}
	if err := f.db.Create(share).Error; err != nil {
		return nil, err
	}
	return share, nil
}

// CreateFriend persists a directed friend edge.
func (f *Factory) CreateFriend(from, to *models.User) (*models.Friend, error) {
	friend := &models.Friend{
		UserID:   from.ID,
		FriendID: to.ID,
	}
	if err := f.db.Create(friend).Error; err != nil {
		return nil, err
	}
	return friend, nil
}

// randomPermission picks a share level weighted toward view_only.
func (f *Factory) randomPermission() models.SharePermission {
	switch f.rng.Intn(4) {
	case 0:
		return models.ShareEdit
	case 1:
		return models.ShareAdmin
	default:
		return models.ShareViewOnly
	}
}

func (f *Factory) logf(format string, args ...any) {
	log.Printf("seed: "+format, args...)
}
