package models

import "time"

// AuditTrail records who did what on the validated API surface. Written
// best-effort after the response is sent.
type AuditTrail struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;size:191;index"`
	EventType   string    `json:"event_type" gorm:"not null;size:20"`
	Description string    `json:"description" gorm:"size:500"`
	DataChanges string    `json:"data_changes" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}
