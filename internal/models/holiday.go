package models

import "time"

// Holiday is a national or regional holiday shown alongside calendars.
type Holiday struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"type:date;not null;index:idx_holidays_country_date" json:"date"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Country     string    `gorm:"size:2;not null;index:idx_holidays_country_date" json:"country"`
	Description string    `gorm:"type:text" json:"description"`
	IsNational  bool      `gorm:"default:true" json:"is_national"`
}

// TableName specifies the table name for GORM.
func (Holiday) TableName() string {
	return "holidays"
}
