// models/reminder_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentReminderLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID       uuid.UUID `gorm:"type:uuid;index;not null"`
	AppointmentID uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Message       string    `gorm:"type:text"`
	Status        string    `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage  string    `gorm:"type:text"`
	Channel       string    `gorm:"type:varchar(20)"` // whatsapp, sms
	SentAt        time.Time

	gorm.Model
}

func (r *AppointmentReminderLog) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
