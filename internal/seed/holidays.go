package seed

import (
	"fmt"
	"time"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// Holidays replaces the US holiday rows for the given year (and the next)
// with the national dataset. A zero year means the current year.
func Holidays(db *gorm.DB, country string, year int) error {
	if country != "US" {
		return fmt.Errorf("no holiday dataset for country %q", country)
	}
	if year == 0 {
		year = time.Now().Year()
	}

	for _, y := range []int{year, year + 1} {
		if err := db.Where("country = ? AND date >= ? AND date < ?",
			country,
			time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(y+1, time.January, 1, 0, 0, 0, 0, time.UTC),
		).Delete(&models.Holiday{}).Error; err != nil {
			return fmt.Errorf("clear holidays %d: %w", y, err)
		}

		holidays := usHolidays(y)
		if err := db.Create(&holidays).Error; err != nil {
			return fmt.Errorf("seed holidays %d: %w", y, err)
		}
	}
	return nil
}

// usHolidays returns the US national holidays for a year, including the
// floating nth-weekday observances.
func usHolidays(year int) []models.Holiday {
	day := func(month time.Month, d int) time.Time {
		return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}

	return []models.Holiday{
		{Date: day(time.January, 1), Name: "New Year's Day", Country: "US"},
		{Date: nthWeekday(year, time.January, time.Monday, 3), Name: "Martin Luther King Jr. Day", Country: "US"},
		{Date: nthWeekday(year, time.February, time.Monday, 3), Name: "Presidents' Day", Country: "US"},
		{Date: lastWeekday(year, time.May, time.Monday), Name: "Memorial Day", Country: "US"},
		{Date: day(time.June, 19), Name: "Juneteenth", Country: "US"},
		{Date: day(time.July, 4), Name: "Independence Day", Country: "US"},
		{Date: nthWeekday(year, time.September, time.Monday, 1), Name: "Labor Day", Country: "US"},
		{Date: nthWeekday(year, time.October, time.Monday, 2), Name: "Columbus Day", Country: "US"},
		{Date: day(time.November, 11), Name: "Veterans Day", Country: "US"},
		{Date: nthWeekday(year, time.November, time.Thursday, 4), Name: "Thanksgiving", Country: "US"},
		{Date: day(time.December, 25), Name: "Christmas Day", Country: "US"},
	}
}

// nthWeekday returns the nth occurrence of a weekday in a month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the final occurrence of a weekday in a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	t := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(t.Weekday()) - int(weekday) + 7) % 7
	return t.AddDate(0, 0, -offset)
}
