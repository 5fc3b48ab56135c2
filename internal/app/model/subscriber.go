package model

import (
	"time"
)

// Subscriber is a newsletter address. Emails are stored lower-cased.
type Subscriber struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}
