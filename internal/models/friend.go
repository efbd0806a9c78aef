package models

import "time"

// Friend is a directed edge from a user to another user. Reciprocity is
// not enforced: the edge is visible only to its creator unless the other
// user creates the reverse edge.
type Friend struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friends_pair" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friends_pair" json:"friend_id"`
	Friend    *User     `gorm:"foreignKey:FriendID" json:"friend,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Friend) TableName() string {
	return "friends"
}
