package models

import "time"

// Calendar is the root of a cascade-delete subtree: removing a calendar
// removes its events, availability entries and shares.
type Calendar struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Events         []Event          `gorm:"foreignKey:CalendarID;constraint:OnDelete:CASCADE" json:"events,omitempty"`
	Availabilities []Availability   `gorm:"foreignKey:CalendarID;constraint:OnDelete:CASCADE" json:"availabilities,omitempty"`
	Shares         []CalendarShare  `gorm:"foreignKey:CalendarID;constraint:OnDelete:CASCADE" json:"shares,omitempty"`
}

// TableName specifies the table name for GORM.
func (Calendar) TableName() string {
	return "calendars"
}
