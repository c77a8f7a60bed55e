package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PlanFree = "FREE"
	PlanPro  = "PRO"
)

type Salon struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"not null"`
	Phone   string
	Address string
	Plan    string `gorm:"type:varchar(10);default:'FREE'"`

	// Business-hours configuration. Empty OpenTime/CloseTime or a nil
	// WorkingDays disables enforcement even when BlockOutsideHours is set.
	OpenTime          string   `gorm:"type:varchar(5)"` // "HH:MM"
	CloseTime         string   `gorm:"type:varchar(5)"` // "HH:MM"
	WorkingDays       IntArray `gorm:"type:jsonb"`      // weekdays, 0=Sunday .. 6=Saturday
	BlockOutsideHours bool     `gorm:"default:false"`

	Users        []User        `gorm:"foreignKey:SalonID"`
	Clients      []Client      `gorm:"foreignKey:SalonID"`
	Services     []Service     `gorm:"foreignKey:SalonID"`
	Appointments []Appointment `gorm:"foreignKey:SalonID"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Custom JSONB type for the working-days set
type IntArray []int

func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *IntArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("unsupported working-days column type")
}

func (a IntArray) Contains(n int) bool {
	for _, v := range a {
		if v == n {
			return true
		}
	}
	return false
}
