package models

import (
	"time"
)

type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:191"`
	Name           string    `json:"name" gorm:"not null;size:255"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password       string    `json:"-" gorm:"not null;size:255"`
	IsVerified     bool      `json:"is_verified" gorm:"default:false"`
	Bio            string    `json:"bio" gorm:"size:500"`
	ProfilePicture *string   `json:"profile_picture" gorm:"size:500"`
	CoverPicture   *string   `json:"cover_picture" gorm:"size:500"`
	Location       string    `json:"location" gorm:"size:255"`
	FollowersCount int       `json:"followers_count" gorm:"default:0"`
	FollowingCount int       `json:"following_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:UserID"`
}

type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"not null;size:191;index"`
	FollowingID string    `json:"following_id" gorm:"not null;size:191;index"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `json:"follower" gorm:"foreignKey:FollowerID"`
	Following User `json:"following" gorm:"foreignKey:FollowingID"`
}
