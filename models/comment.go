package models

import (
	"time"
)

type CommentStatus string

const (
	CommentStatusActive  CommentStatus = "active"
	CommentStatusDeleted CommentStatus = "deleted"
	CommentStatusHidden  CommentStatus = "hidden"
)

type Comment struct {
	ID              string        `json:"id" gorm:"primaryKey;size:191"`
	PostID          string        `json:"post_id" gorm:"not null;size:191;index"`
	UserID          string        `json:"user_id" gorm:"not null;size:191;index"`
	Name            string        `json:"name" gorm:"size:255"`
	Text            string        `json:"text" gorm:"not null"`
	Status          CommentStatus `json:"status" gorm:"not null;default:'active';size:20"`
	ParentCommentID *string       `json:"parent_comment_id" gorm:"size:191;index"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
