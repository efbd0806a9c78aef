package models

import "time"

// Availability marks a user as busy or free on a calendar for a time
// interval. The reconciler keeps at most one record per
// (user, calendar, calendar-day); the store itself does not enforce it.
type Availability struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_availability_user_cal_day" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CalendarID  uint      `gorm:"not null;index:idx_availability_user_cal_day" json:"calendar_id"`
	Calendar    *Calendar `gorm:"foreignKey:CalendarID" json:"calendar,omitempty"`
	StartTime   time.Time `gorm:"not null;index:idx_availability_user_cal_day" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	IsBusy      bool      `gorm:"default:true" json:"is_busy"`
	Title       string    `gorm:"size:200" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for GORM.
func (Availability) TableName() string {
	return "availabilities"
}
