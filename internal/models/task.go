package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/toodles-app/toodles/internal/constants"
)

type Task struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	DueDate      time.Time `gorm:"type:date;not null" json:"due_date"`
	DueTime      string    `gorm:"type:varchar(5);not null" json:"due_time"`
	TimeEstimate int       `gorm:"not null" json:"time_estimate"`
	Urgency      bool      `gorm:"not null" json:"urgency"`
	Importance   bool      `gorm:"not null" json:"importance"`
	Done         bool      `gorm:"not null;default:false" json:"done"`

	// NotificationTime is the reminder lead time in minutes before the due
	// instant. Zero means "notify exactly at due time".
	NotificationTime int `gorm:"not null;default:0" json:"notification_time"`

	AlarmEnabled bool `gorm:"not null;default:false" json:"alarm_enabled"`

	// AlarmTriggered is one-way: once set it never resets.
	AlarmTriggered bool `gorm:"not null;default:false" json:"alarm_triggered"`

	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// DueAt combines DueDate and DueTime into the single due instant used for all
// reminder and alarm comparisons.
func (t Task) DueAt() (time.Time, error) {
	tod, err := time.Parse(constants.DueTimeLayout, t.DueTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("task %d: invalid due time %q: %w", t.ID, t.DueTime, err)
	}

	return time.Date(
		t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(),
		tod.Hour(), tod.Minute(), 0, 0,
		t.DueDate.Location(),
	), nil
}
