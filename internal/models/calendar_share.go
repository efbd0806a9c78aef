package models

import "time"

// SharePermission defines the access level a share grants on a calendar.
type SharePermission string

const (
	// ShareViewOnly grants read access only.
	ShareViewOnly SharePermission = "view_only"
	// ShareEdit grants read plus write/delete of calendar contents.
	ShareEdit SharePermission = "edit"
	// ShareAdmin grants the same content rights as edit; sharing and
	// deleting the calendar itself remain owner-only.
	ShareAdmin SharePermission = "admin"
)

// Valid reports whether p is a known permission level.
func (p SharePermission) Valid() bool {
	switch p {
	case ShareViewOnly, ShareEdit, ShareAdmin:
		return true
	}
	return false
}

// CanWrite reports whether the permission allows mutating calendar contents.
func (p SharePermission) CanWrite() bool {
	return p == ShareEdit || p == ShareAdmin
}

// CalendarShare grants one user a permission level on one calendar.
// Unique per (calendar, user); re-sharing overwrites the permission.
type CalendarShare struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CalendarID uint            `gorm:"not null;uniqueIndex:idx_calendar_shares_pair" json:"calendar_id"`
	Calendar   *Calendar       `gorm:"foreignKey:CalendarID" json:"calendar,omitempty"`
	UserID     uint            `gorm:"not null;uniqueIndex:idx_calendar_shares_pair" json:"user_id"`
	User       *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Permission SharePermission `gorm:"type:varchar(20);not null;default:'view_only'" json:"permission"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CalendarShare) TableName() string {
	return "calendar_shares"
}
