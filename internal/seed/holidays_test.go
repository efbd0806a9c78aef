package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"daygrid/internal/database"
	"daygrid/internal/models"
)

func TestNthWeekday(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		weekday time.Weekday
		n       int
		want    string
	}{
		{"MLK Day 2026", 2026, time.January, time.Monday, 3, "2026-01-19"},
		{"Labor Day 2026", 2026, time.September, time.Monday, 1, "2026-09-07"},
		{"Thanksgiving 2026", 2026, time.November, time.Thursday, 4, "2026-11-26"},
		{"Thanksgiving 2025", 2025, time.November, time.Thursday, 4, "2025-11-27"},
		{"Columbus Day 2026", 2026, time.October, time.Monday, 2, "2026-10-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nthWeekday(tt.year, tt.month, tt.weekday, tt.n)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestLastWeekday(t *testing.T) {
	// Memorial Day: last Monday of May.
	assert.Equal(t, "2026-05-25", lastWeekday(2026, time.May, time.Monday).Format("2006-01-02"))
	assert.Equal(t, "2025-05-26", lastWeekday(2025, time.May, time.Monday).Format("2006-01-02"))
	// Month ending on the target weekday.
	assert.Equal(t, "2026-08-31", lastWeekday(2026, time.August, time.Monday).Format("2006-01-02"))
}

func TestHolidaysReplacesYearRows(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// A stale row in the target year that the official set does not contain.
	require.NoError(t, db.Create(&models.Holiday{
		Date:    time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC),
		Name:    "Totally Real Holiday",
		Country: "US",
	}).Error)

	require.NoError(t, Holidays(db, "US", 2026))

	var stale int64
	require.NoError(t, db.Model(&models.Holiday{}).Where("name = ?", "Totally Real Holiday").Count(&stale).Error)
	assert.Zero(t, stale)

	var count int64
	require.NoError(t, db.Model(&models.Holiday{}).Where("country = ?", "US").Count(&count).Error)
	assert.Equal(t, int64(22), count, "eleven holidays for each of the two seeded years")

	// Running again must not duplicate rows.
	require.NoError(t, Holidays(db, "US", 2026))
	require.NoError(t, db.Model(&models.Holiday{}).Count(&count).Error)
	assert.Equal(t, int64(22), count)

	require.Error(t, Holidays(db, "CA", 2026))
}
