package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentDone      = "DONE"
	AppointmentCanceled  = "CANCELED"
)

// ValidAppointmentStatus reports whether s is one of the four allowed
// status values. Transitions between them are free-form.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentDone, AppointmentCanceled:
		return true
	}
	return false
}

// Appointment rows are hard-deleted, so no gorm.Model here.
type Appointment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	StartAt time.Time `gorm:"index;not null"`
	EndAt   time.Time `gorm:"not null"` // derived: StartAt + service duration
	Status  string    `gorm:"type:varchar(10);default:'PENDING'"`
	Notes   string

	Client  Client  `gorm:"foreignKey:ClientID"`
	Service Service `gorm:"foreignKey:ServiceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
