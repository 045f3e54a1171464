package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeFollow  NotificationType = "follow"
	NotificationTypeLike    NotificationType = "like"
	NotificationTypeComment NotificationType = "comment"
	NotificationTypeShare   NotificationType = "share"
)

type Notification struct {
	ID           string           `json:"id" gorm:"primaryKey;size:191"`
	Type         NotificationType `json:"type" gorm:"not null;size:50"`
	ActorUserID  string           `json:"actor_user_id" gorm:"not null;size:191"`  // Who performed the action
	TargetUserID string           `json:"target_user_id" gorm:"not null;size:191"` // Who receives the notification
	PostID       *string          `json:"post_id" gorm:"size:191"`
	CommentID    *string          `json:"comment_id" gorm:"size:191"`
	IsRead       bool             `json:"is_read" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	ActorUser User  `json:"actor_user" gorm:"foreignKey:ActorUserID"`
	Post      *Post `json:"post,omitempty" gorm:"foreignKey:PostID"`
}

// NotificationStats represents notification statistics
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}

// PaginatedNotifications represents paginated notification response
type PaginatedNotifications struct {
	Notifications []Notification `json:"notifications"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	Total         int64          `json:"total"`
	HasMore       bool           `json:"has_more"`
	TotalPages    int            `json:"total_pages"`
}

// Message returns a human-readable description of the notification.
func (n *Notification) Message() string {
	switch n.Type {
	case NotificationTypeFollow:
		return "started following you"
	case NotificationTypeLike:
		return "liked your post"
	case NotificationTypeComment:
		return "commented on your post"
	case NotificationTypeShare:
		return "shared your post"
	default:
		return "interacted with your content"
	}
}
