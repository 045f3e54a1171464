package models

import (
	"time"
)

type ReactionType string

const (
	ReactionTypeLike  ReactionType = "like"
	ReactionTypeLove  ReactionType = "love"
	ReactionTypeHaha  ReactionType = "haha"
	ReactionTypeWow   ReactionType = "wow"
	ReactionTypeSad   ReactionType = "sad"
	ReactionTypeAngry ReactionType = "angry"
)

// ValidReactionType reports whether t is one of the supported reactions.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionTypeLike, ReactionTypeLove, ReactionTypeHaha,
		ReactionTypeWow, ReactionTypeSad, ReactionTypeAngry:
		return true
	}
	return false
}

// Reaction is one user's reaction to a post or a comment. Exactly one of
// PostID and CommentID is set, and a user holds at most one reaction per
// target.
type Reaction struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    string       `json:"user_id" gorm:"not null;size:191;index"`
	PostID    *string      `json:"post_id" gorm:"size:191;index"`
	CommentID *string      `json:"comment_id" gorm:"size:191;index"`
	Type      ReactionType `json:"type" gorm:"not null;size:20"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
