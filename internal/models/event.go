package models

import "time"

// Event belongs to exactly one calendar and occupies the half-open
// interval [StartTime, EndTime). Overlapping events are allowed.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CalendarID  uint      `gorm:"not null;index" json:"calendar_id"`
	Calendar    *Calendar `gorm:"foreignKey:CalendarID" json:"calendar,omitempty"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}
