package model

import "time"

// StudySession is a scheduled learning activity owned by a User.
type StudySession struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	Topic         string    `json:"topic" gorm:"type:text"`
	ScheduledTime time.Time `json:"scheduled_time" gorm:"not null"`
	Completed     bool      `json:"completed" gorm:"not null;default:false"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// TableName pins the table to "sessions".
func (StudySession) TableName() string {
	return "sessions"
}

// StatusLabel is the label shown on the profile view.
func (s StudySession) StatusLabel() string {
	if s.Completed {
		return "Yes"
	}
	return "Pending"
}
