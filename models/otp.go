package models

import "time"

// Otp is a pending email-verification code. One row per email; re-issuing
// replaces the code and pushes the expiry forward.
type Otp struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Code      string    `json:"-" gorm:"not null;size:10"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the code is past its lifetime at t.
func (o *Otp) Expired(t time.Time) bool {
	return t.After(o.ExpiresAt)
}
