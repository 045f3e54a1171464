package models

import (
	"time"
)

type Post struct {
	ID            string    `json:"id" gorm:"primaryKey;size:191"`
	UserID        string    `json:"user_id" gorm:"not null;size:191;index"`
	Desc          string    `json:"desc"`
	Image         string    `json:"image" gorm:"size:500"`
	LikesCount    int       `json:"likes_count" gorm:"default:0"`
	CommentsCount int       `json:"comments_count" gorm:"default:0"`
	SharesCount   int       `json:"shares_count" gorm:"default:0"`
	SharedPostID  *string   `json:"shared_post_id" gorm:"size:191;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User     User      `json:"user" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

// SharedPostPayload is the one-level resolved original carried by a reshare
// in timeline responses.
type SharedPostPayload struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Desc       string    `json:"desc"`
	Image      string    `json:"image,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TimelinePost is a feed entry: the post plus, for reshares, the resolved
// original.
type TimelinePost struct {
	Post
	SharedPost *SharedPostPayload `json:"shared_post,omitempty"`
}

// FeedResponse is the paginated timeline envelope.
type FeedResponse struct {
	Posts      []TimelinePost `json:"posts"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int64          `json:"total"`
	HasMore    bool           `json:"has_more"`
	TotalPages int            `json:"total_pages"`
}
