package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Name     string    `gorm:"not null"`
	Category string
	// Prices are stored as integer cents, durations in minutes.
	PriceCents int  `gorm:"not null"`
	DurationM  int  `gorm:"not null"`
	IsActive   bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ServiceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
