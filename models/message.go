package models

import "time"

type Message struct {
	ID         string    `json:"id" gorm:"primaryKey;size:191"`
	SenderID   string    `json:"sender_id" gorm:"not null;size:191;index"`
	ReceiverID string    `json:"receiver_id" gorm:"not null;size:191;index"`
	Text       string    `json:"text" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`

	Sender   User `json:"sender" gorm:"foreignKey:SenderID"`
	Receiver User `json:"receiver" gorm:"foreignKey:ReceiverID"`
}
