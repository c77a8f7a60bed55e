package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	SalonID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_salon_client_phone,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index"`

	Name     string `gorm:"not null"`
	Phone    string `gorm:"uniqueIndex:idx_salon_client_phone,priority:2"`
	Email    string
	Notes    string
	IsActive bool `gorm:"default:true"`

	Appointments []Appointment `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
