package models

import "time"

// Generic CRUD resources served by the resource controller. Numeric IDs,
// uniform shape. The v2 API validates the `validate` tags on create and
// update; v1 persists the payload as-is.

type Community struct {
	ID                          uint        `json:"id" gorm:"primaryKey"`
	Name                        string      `json:"name" gorm:"not null;size:255" validate:"required"`
	Description                 string      `json:"description" gorm:"size:1000"`
	Type                        string      `json:"type" gorm:"not null;size:50" validate:"required"`
	AdminUserID                 string      `json:"admin_user_id" gorm:"not null;size:191" validate:"required"`
	MembersCount                int         `json:"members_count" gorm:"default:0"`
	PrivacyLevel                string      `json:"privacy_level" gorm:"not null;size:20" validate:"required,oneof=public private"`
	JoinRequestApprovalRequired bool        `json:"join_request_approval_required" gorm:"default:false"`
	CoverPhoto                  string      `json:"cover_photo" gorm:"size:500" validate:"omitempty,uri"`
	Rules                       StringSlice `json:"rules" gorm:"type:json"`
	CreatedAt                   time.Time   `json:"created_at"`
	UpdatedAt                   time.Time   `json:"updated_at"`
}

type CommunityMember struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"not null;index" validate:"required"`
	UserID      string    `json:"user_id" gorm:"not null;size:191;index" validate:"required"`
	Role        string    `json:"role" gorm:"not null;default:'member';size:20" validate:"omitempty,oneof=member moderator admin"`
	Status      string    `json:"status" gorm:"not null;default:'active';size:20" validate:"omitempty,oneof=active pending banned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommunityPost struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"not null;index" validate:"required"`
	UserID      string    `json:"user_id" gorm:"not null;size:191;index" validate:"required"`
	Content     string    `json:"content" gorm:"not null" validate:"required"`
	Status      string    `json:"status" gorm:"not null;default:'active';size:20" validate:"omitempty,oneof=active deleted hidden"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommunityEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID uint      `json:"community_id" gorm:"not null;index" validate:"required"`
	OrganizerID string    `json:"organizer_id" gorm:"not null;size:191" validate:"required"`
	Title       string    `json:"title" gorm:"not null;size:255" validate:"required"`
	Description string    `json:"description" gorm:"size:1000"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at"`
	Location    string    `json:"location" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventAttendee struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EventID    uint      `json:"event_id" gorm:"not null;index" validate:"required"`
	UserID     string    `json:"user_id" gorm:"not null;size:191;index" validate:"required"`
	RSVPStatus string    `json:"rsvp_status" gorm:"not null;default:'going';size:20" validate:"omitempty,oneof=going interested declined"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PostReport struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID string    `json:"reporter_id" gorm:"not null;size:191" validate:"required"`
	PostID     string    `json:"post_id" gorm:"not null;size:191;index" validate:"required"`
	Reason     string    `json:"reason" gorm:"not null;size:500" validate:"required"`
	Status     string    `json:"status" gorm:"not null;default:'open';size:20" validate:"omitempty,oneof=open reviewed dismissed actioned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CommentReport struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReporterID string    `json:"reporter_id" gorm:"not null;size:191" validate:"required"`
	CommentID  string    `json:"comment_id" gorm:"not null;size:191;index" validate:"required"`
	Reason     string    `json:"reason" gorm:"not null;size:500" validate:"required"`
	Status     string    `json:"status" gorm:"not null;default:'open';size:20" validate:"omitempty,oneof=open reviewed dismissed actioned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CommunityReport struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ReporterID  string    `json:"reporter_id" gorm:"not null;size:191" validate:"required"`
	CommunityID uint      `json:"community_id" gorm:"not null;index" validate:"required"`
	Reason      string    `json:"reason" gorm:"not null;size:500" validate:"required"`
	Status      string    `json:"status" gorm:"not null;default:'open';size:20" validate:"omitempty,oneof=open reviewed dismissed actioned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PostTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index" validate:"required"`
	Tag       string    `json:"tag" gorm:"not null;size:100;index" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserSettings struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             string    `json:"user_id" gorm:"uniqueIndex;not null;size:191" validate:"required"`
	PrivacyLevel       string    `json:"privacy_level" gorm:"not null;default:'public';size:20" validate:"omitempty,oneof=public friends private"`
	EmailNotifications bool      `json:"email_notifications" gorm:"default:true"`
	PushNotifications  bool      `json:"push_notifications" gorm:"default:true"`
	Language           string    `json:"language" gorm:"default:'en';size:10"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type BlockedUser struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;size:191;index" validate:"required"`
	BlockedUserID string    `json:"blocked_user_id" gorm:"not null;size:191;index" validate:"required"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Farmer struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	UserID    string      `json:"user_id" gorm:"uniqueIndex;not null;size:191" validate:"required"`
	FarmName  string      `json:"farm_name" gorm:"not null;size:255" validate:"required"`
	Location  string      `json:"location" gorm:"size:255"`
	CropTypes StringSlice `json:"crop_types" gorm:"type:json"`
	FarmSize  float64     `json:"farm_size"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Share is the normalized share record kept as a plain CRUD resource; the
// feed itself reads reshares off Post.SharedPostID.
type Share struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             string    `json:"user_id" gorm:"not null;size:191;index" validate:"required"`
	PostID             string    `json:"post_id" gorm:"not null;size:191;index" validate:"required"`
	SharedMessage      string    `json:"shared_message" gorm:"size:500"`
	VisibilitySettings string    `json:"visibility_settings" gorm:"not null;default:'public';size:20" validate:"omitempty,oneof=public friends private"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
