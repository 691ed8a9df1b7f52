package model

import "time"

// User represents a registered learner.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	ProfilePicture *string   `json:"profile_picture,omitempty" gorm:"size:512"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
