package seed

import (
	"fmt"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// Run populates the database with a connected demo dataset: users with
// calendars, events, availability markers, cross-user shares and friend
// edges, plus the holiday table.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return nil
	}
	f.logf("created %d users (password %q)", len(users), opts.Password)

	// First user doubles as the admin account.
	users[0].IsAdmin = true
	if err := db.Model(users[0]).Update("is_admin", true).Error; err != nil {
		return fmt.Errorf("seed admin flag: %w", err)
	}

	var calendars []*models.Calendar
	for _, user := range users {
		for i := 0; i < opts.CalendarsPerUser; i++ {
			calendar, err := f.CreateCalendar(user)
			if err != nil {
				return fmt.Errorf("seed calendar: %w", err)
			}
			calendars = append(calendars, calendar)

			for j := 0; j < opts.EventsPerCalendar; j++ {
				if _, err := f.CreateEvent(calendar); err != nil {
					return fmt.Errorf("seed event: %w", err)
				}
			}
			for j := 0; j < opts.MarkersPerCalendar; j++ {
				if _, err := f.CreateAvailability(user, calendar); err != nil {
					return fmt.Errorf("seed availability: %w", err)
				}
			}
		}
	}
	f.logf("created %d calendars with events and availability", len(calendars))

	// Share each user's first calendar with the next user, and befriend
	// them, so every account sees some foreign data.
	if opts.CalendarsPerUser == 0 {
		return Holidays(db, "US", 0)
	}
	for i, user := range users {
		next := users[(i+1)%len(users)]
		if next.ID == user.ID {
			continue
		}

		own := calendars[i*opts.CalendarsPerUser]
		if _, err := f.CreateShare(own, next, f.randomPermission()); err != nil {
			return fmt.Errorf("seed share: %w", err)
		}
		if _, err := f.CreateFriend(user, next); err != nil {
			return fmt.Errorf("seed friend: %w", err)
		}
	}
	f.logf("created share and friend mesh")

	if err := Holidays(db, "US", 0); err != nil {
		return err
	}

	return nil
}
