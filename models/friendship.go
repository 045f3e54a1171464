package models

import "time"

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	FriendshipStatusBlocked  FriendshipStatus = "blocked"
)

// Friendship is the mutual relationship between two users. UserID1/UserID2
// are kept in lexical order so a pair maps to one row; RequesterID records
// who initiated it.
type Friendship struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID1     string           `json:"user1_id" gorm:"not null;size:191;index"`
	UserID2     string           `json:"user2_id" gorm:"not null;size:191;index"`
	RequesterID string           `json:"requester_id" gorm:"not null;size:191"`
	Status      FriendshipStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	User1 User `json:"user1" gorm:"foreignKey:UserID1"`
	User2 User `json:"user2" gorm:"foreignKey:UserID2"`
}
