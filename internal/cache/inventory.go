package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix             = "user:%d"
	VisibleCalendarsKeyPrefix = "user:%d:calendars"
	HolidaysKeyPrefix         = "holidays:%s:%d"
)

const (
	UserTTL             = 5 * time.Minute
	VisibleCalendarsTTL = 1 * time.Minute
	HolidaysTTL         = 12 * time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VisibleCalendarsKey(userID uint) string {
	return fmt.Sprintf(VisibleCalendarsKeyPrefix, userID)
}

func HolidaysKey(country string, year int) string {
	return fmt.Sprintf(HolidaysKeyPrefix, country, year)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateVisibleCalendars drops the cached owned-plus-shared calendar list
// for a user. Called whenever a share or calendar mutation changes what the
// user can see.
func InvalidateVisibleCalendars(ctx context.Context, userID uint) {
	Invalidate(ctx, VisibleCalendarsKey(userID))
}
